package raffle

import "fmt"

const (
	FeeCollectorAccountSize = 1 // initialized
)

type FeeCollectorAccount struct {
	Initialized uint8
}

func (obj *FeeCollectorAccount) Marshal() []byte {
	return []byte{obj.Initialized}
}

func (obj *FeeCollectorAccount) Unmarshal(data []byte) error {
	if len(data) < FeeCollectorAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	getUint8(data, &obj.Initialized, &offset)
	return nil
}

func (obj *FeeCollectorAccount) String() string {
	return fmt.Sprintf("FeeCollector{initialized=%d}", obj.Initialized)
}
