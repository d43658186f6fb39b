package raffle

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	raffle_program "github.com/code-payments/raffle-client/pkg/solana/raffle"
	"github.com/code-payments/raffle-client/pkg/solana/token"
)

// Addresses of a deployment's singleton accounts.
type Singletons struct {
	Config       ed25519.PublicKey
	Term         ed25519.PublicKey
	Counter      ed25519.PublicKey
	FeeCollector ed25519.PublicKey
}

func (c *Client) GetSingletonAddresses() (*Singletons, error) {
	program := c.program()

	config, _, err := raffle_program.GetConfigAddress(program)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving config address")
	}
	term, _, err := raffle_program.GetTermAddress(program)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving term address")
	}
	counter, _, err := raffle_program.GetCounterAddress(program)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving counter address")
	}
	feeCollector, _, err := raffle_program.GetFeeCollectorAddress(program)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving fee collector address")
	}

	return &Singletons{
		Config:       config,
		Term:         term,
		Counter:      counter,
		FeeCollector: feeCollector,
	}, nil
}

func (c *Client) GetRaffleAddress(raffleNo uint64) (ed25519.PublicKey, error) {
	address, _, err := raffle_program.GetRaffleAddress(c.program(), &raffle_program.GetRaffleAddressArgs{
		RaffleNo: raffleNo,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error deriving raffle %d address", raffleNo)
	}
	return address, nil
}

func (c *Client) GetParticipationAddress(raffleNo uint64, id raffle_program.ParticipationID) (ed25519.PublicKey, error) {
	address, _, err := raffle_program.GetParticipationAddress(c.program(), &raffle_program.GetParticipationAddressArgs{
		RaffleNo: raffleNo,
		ID:       id,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error deriving participation %s address in raffle %d", id, raffleNo)
	}
	return address, nil
}

func (c *Client) GetFeeTypeAddress(no uint64) (ed25519.PublicKey, error) {
	address, _, err := raffle_program.GetFeeTypeAddress(c.program(), &raffle_program.GetFeeTypeAddressArgs{
		No: no,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error deriving fee type %d address", no)
	}
	return address, nil
}

func (c *Client) GetRewardTypeAddress(no uint64) (ed25519.PublicKey, error) {
	address, _, err := raffle_program.GetRewardTypeAddress(c.program(), &raffle_program.GetRewardTypeAddressArgs{
		No: no,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error deriving reward type %d address", no)
	}
	return address, nil
}

func associatedAccount(wallet ed25519.PublicKey, mint *Mint) (ed25519.PublicKey, error) {
	address, err := token.GetAssociatedAccount(wallet, mint.Address, mint.TokenProgram)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving associated token account")
	}
	return address, nil
}
