package raffle

import "fmt"

const (
	CounterAccountSize = (1 + // initialized
		8) // number_of_raffles
)

type CounterAccount struct {
	Initialized     uint8
	NumberOfRaffles uint64
}

// Next returns the raffle number the program assigns to the next raffle.
func (obj *CounterAccount) Next() (uint64, bool) {
	next := obj.NumberOfRaffles + 1
	return next, next != 0
}

func (obj *CounterAccount) Marshal() []byte {
	data := make([]byte, CounterAccountSize)

	var offset int
	putUint8(data, obj.Initialized, &offset)
	putUint64(data, obj.NumberOfRaffles, &offset)
	return data
}

func (obj *CounterAccount) Unmarshal(data []byte) error {
	if len(data) < CounterAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	getUint8(data, &obj.Initialized, &offset)
	getUint64(data, &obj.NumberOfRaffles, &offset)
	return nil
}

func (obj *CounterAccount) String() string {
	return fmt.Sprintf(
		"Counter{initialized=%d,number_of_raffles=%d}",
		obj.Initialized,
		obj.NumberOfRaffles,
	)
}
