package raffle

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"sort"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/raffle-client/pkg/solana"
	raffle_program "github.com/code-payments/raffle-client/pkg/solana/raffle"
	"github.com/code-payments/raffle-client/pkg/solana/token"
)

// Typed program records paired with their addresses.

type Config struct {
	Address ed25519.PublicKey
	Account *raffle_program.ConfigAccount
}

type Term struct {
	Address ed25519.PublicKey
	Account *raffle_program.TermAccount
}

type Counter struct {
	Address ed25519.PublicKey
	Account *raffle_program.CounterAccount
}

type FeeCollector struct {
	Address  ed25519.PublicKey
	Account  *raffle_program.FeeCollectorAccount
	Lamports uint64
}

type RewardFeeType struct {
	Address ed25519.PublicKey
	Account *raffle_program.RewardFeeTypeAccount
}

type Raffle struct {
	Address ed25519.PublicKey
	Account *raffle_program.RaffleAccount
}

type Participation struct {
	Address ed25519.PublicKey
	Account *raffle_program.ParticipationAccount
}

// Mint facts are immutable and cached for the lifetime of the Client.
type Mint = token.MintInfo

type unmarshaler interface {
	Unmarshal(data []byte) error
}

func (c *Client) GetConfig(ctx context.Context) (*Config, error) {
	const op = "get_config"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return nil, newError(op, KindUnknown, err)
	}

	var account raffle_program.ConfigAccount
	if _, err := c.fetch(ctx, op, singletons.Config, &account); err != nil {
		return nil, err
	}
	return &Config{Address: singletons.Config, Account: &account}, nil
}

func (c *Client) GetTerm(ctx context.Context) (*Term, error) {
	const op = "get_term"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return nil, newError(op, KindUnknown, err)
	}

	var account raffle_program.TermAccount
	if _, err := c.fetch(ctx, op, singletons.Term, &account); err != nil {
		return nil, err
	}
	return &Term{Address: singletons.Term, Account: &account}, nil
}

func (c *Client) GetCounter(ctx context.Context) (*Counter, error) {
	const op = "get_counter"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return nil, newError(op, KindUnknown, err)
	}

	var account raffle_program.CounterAccount
	if _, err := c.fetch(ctx, op, singletons.Counter, &account); err != nil {
		return nil, err
	}
	return &Counter{Address: singletons.Counter, Account: &account}, nil
}

// GetFeeCollector returns the fee collector along with the native fees it
// holds, in lamports.
func (c *Client) GetFeeCollector(ctx context.Context) (*FeeCollector, error) {
	const op = "get_fee_collector"

	singletons, err := c.GetSingletonAddresses()
	if err != nil {
		return nil, newError(op, KindUnknown, err)
	}

	var account raffle_program.FeeCollectorAccount
	info, err := c.fetch(ctx, op, singletons.FeeCollector, &account)
	if err != nil {
		return nil, err
	}
	return &FeeCollector{Address: singletons.FeeCollector, Account: &account, Lamports: info.Lamports}, nil
}

func (c *Client) GetFeeType(ctx context.Context, no uint64) (*RewardFeeType, error) {
	const op = "get_fee_type"

	address, err := c.GetFeeTypeAddress(no)
	if err != nil {
		return nil, newError(op, KindUnknown, err)
	}
	return c.getRewardFeeType(ctx, op, address, raffle_program.FeeTypeInitialized)
}

func (c *Client) GetRewardType(ctx context.Context, no uint64) (*RewardFeeType, error) {
	const op = "get_reward_type"

	address, err := c.GetRewardTypeAddress(no)
	if err != nil {
		return nil, newError(op, KindUnknown, err)
	}
	return c.getRewardFeeType(ctx, op, address, raffle_program.RewardTypeInitialized)
}

func (c *Client) getRewardFeeType(ctx context.Context, op string, address ed25519.PublicKey, sentinel uint8) (*RewardFeeType, error) {
	var account raffle_program.RewardFeeTypeAccount
	if _, err := c.fetch(ctx, op, address, &account); err != nil {
		return nil, err
	}

	if account.Initialized != sentinel {
		return nil, newError(op, KindMalformed, errors.Wrapf(ErrMalformed, "%s has initialized=%d, expected %d", base58.Encode(address), account.Initialized, sentinel))
	}
	return &RewardFeeType{Address: address, Account: &account}, nil
}

func (c *Client) GetAllFeeTypes(ctx context.Context) ([]*RewardFeeType, error) {
	return c.getAllRewardFeeTypes(ctx, "get_all_fee_types", raffle_program.FeeTypeInitialized)
}

func (c *Client) GetAllRewardTypes(ctx context.Context) ([]*RewardFeeType, error) {
	return c.getAllRewardFeeTypes(ctx, "get_all_reward_types", raffle_program.RewardTypeInitialized)
}

func (c *Client) getAllRewardFeeTypes(ctx context.Context, op string, sentinel uint8) ([]*RewardFeeType, error) {
	accounts, err := c.scan(
		ctx,
		op,
		solana.NewDataSizeFilter(raffle_program.RewardFeeTypeAccountSize),
		solana.NewMemcmpFilter(raffle_program.RewardFeeTypeInitializedOffset, []byte{sentinel}),
	)
	if err != nil {
		return nil, err
	}

	res := make([]*RewardFeeType, 0, len(accounts))
	for _, keyed := range accounts {
		var account raffle_program.RewardFeeTypeAccount
		if err := account.Unmarshal(keyed.Account.Data); err != nil {
			return nil, newError(op, KindMalformed, errors.Wrapf(err, "invalid type %s", base58.Encode(keyed.PublicKey)))
		}
		res = append(res, &RewardFeeType{Address: keyed.PublicKey, Account: &account})
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Account.No < res[j].Account.No
	})
	return res, nil
}

// GetRaffle reads the raffle at its derived address.
func (c *Client) GetRaffle(ctx context.Context, raffleNo uint64) (*Raffle, error) {
	const op = "get_raffle"

	address, err := c.GetRaffleAddress(raffleNo)
	if err != nil {
		return nil, newError(op, KindUnknown, err)
	}

	var account raffle_program.RaffleAccount
	if _, err := c.fetch(ctx, op, address, &account); err != nil {
		return nil, err
	}
	return &Raffle{Address: address, Account: &account}, nil
}

// FindRaffle locates a raffle by scanning for its number rather than
// deriving its address.
func (c *Client) FindRaffle(ctx context.Context, raffleNo uint64) (*Raffle, error) {
	const op = "find_raffle"

	raffles, err := c.scanRaffles(ctx, op, solana.NewMemcmpFilter(raffle_program.RaffleNoOffset, raffle_program.Uint64Seed(raffleNo)))
	if err != nil {
		return nil, err
	}

	switch len(raffles) {
	case 0:
		return nil, newError(op, KindNotFound, errors.Wrapf(ErrAccountNotFound, "raffle %d", raffleNo))
	case 1:
		return raffles[0], nil
	}
	return nil, newError(op, KindMalformed, errors.Wrapf(ErrMalformed, "%d raffles with number %d", len(raffles), raffleNo))
}

func (c *Client) GetRafflesByState(ctx context.Context, state raffle_program.RaffleState) ([]*Raffle, error) {
	return c.scanRaffles(ctx, "get_raffles_by_state", stateFilter(state))
}

func (c *Client) GetRafflesByInitializer(ctx context.Context, initializer ed25519.PublicKey) ([]*Raffle, error) {
	return c.scanRaffles(ctx, "get_raffles_by_initializer", initializerFilter(initializer))
}

func (c *Client) GetRafflesByInitializerAndState(ctx context.Context, initializer ed25519.PublicKey, state raffle_program.RaffleState) ([]*Raffle, error) {
	return c.scanRaffles(ctx, "get_raffles_by_initializer_and_state", initializerFilter(initializer), stateFilter(state))
}

func stateFilter(state raffle_program.RaffleState) solana.ProgramAccountFilter {
	return solana.NewMemcmpFilter(raffle_program.RaffleStateOffset, []byte{byte(state)})
}

func initializerFilter(initializer ed25519.PublicKey) solana.ProgramAccountFilter {
	return solana.NewMemcmpFilter(raffle_program.RaffleInitializerOffset, initializer)
}

// scanRaffles decodes every raffle sized account matching filters. Smaller
// program accounts are other record types and are skipped.
func (c *Client) scanRaffles(ctx context.Context, op string, filters ...solana.ProgramAccountFilter) ([]*Raffle, error) {
	accounts, err := c.scan(ctx, op, filters...)
	if err != nil {
		return nil, err
	}

	res := make([]*Raffle, 0, len(accounts))
	for _, keyed := range accounts {
		if len(keyed.Account.Data) < raffle_program.MinRaffleAccountSize {
			continue
		}

		var account raffle_program.RaffleAccount
		if err := account.Unmarshal(keyed.Account.Data); err != nil {
			return nil, newError(op, KindMalformed, errors.Wrapf(err, "invalid raffle %s", base58.Encode(keyed.PublicKey)))
		}
		res = append(res, &Raffle{Address: keyed.PublicKey, Account: &account})
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Account.RaffleNo < res[j].Account.RaffleNo
	})
	return res, nil
}

func (c *Client) GetParticipationByAddress(ctx context.Context, address ed25519.PublicKey) (*Participation, error) {
	const op = "get_participation"

	var account raffle_program.ParticipationAccount
	if _, err := c.fetch(ctx, op, address, &account); err != nil {
		return nil, err
	}
	return &Participation{Address: address, Account: &account}, nil
}

// GetParticipation reads the participation at the address derived from id.
func (c *Client) GetParticipation(ctx context.Context, raffleNo uint64, id raffle_program.ParticipationID) (*Participation, error) {
	address, err := c.GetParticipationAddress(raffleNo, id)
	if err != nil {
		return nil, newError("get_participation", KindUnknown, err)
	}
	return c.GetParticipationByAddress(ctx, address)
}

func (c *Client) GetParticipationsByWallet(ctx context.Context, wallet ed25519.PublicKey) ([]*Participation, error) {
	return c.scanParticipations(
		ctx,
		"get_participations_by_wallet",
		solana.NewMemcmpFilter(raffle_program.ParticipationAddressOffset, wallet),
	)
}

func (c *Client) GetParticipationsByRaffle(ctx context.Context, raffleNo uint64) ([]*Participation, error) {
	return c.scanParticipations(
		ctx,
		"get_participations_by_raffle",
		solana.NewMemcmpFilter(raffle_program.ParticipationRaffleNoOffset, raffle_program.Uint64Seed(raffleNo)),
	)
}

// GetParticipationByNumber resolves a participant number to its record. It
// works for both seed schemes, which is how winners of single entry raffles
// are located.
func (c *Client) GetParticipationByNumber(ctx context.Context, raffleNo, participantNo uint64) (*Participation, error) {
	const op = "get_participation_by_number"

	participations, err := c.scanParticipations(
		ctx,
		op,
		solana.NewMemcmpFilter(raffle_program.ParticipationParticipantNoOffset, raffle_program.Uint64Seed(participantNo)),
		solana.NewMemcmpFilter(raffle_program.ParticipationRaffleNoOffset, raffle_program.Uint64Seed(raffleNo)),
	)
	if err != nil {
		return nil, err
	}

	switch len(participations) {
	case 0:
		return nil, newError(op, KindNotFound, errors.Wrapf(ErrAccountNotFound, "participant %d in raffle %d", participantNo, raffleNo))
	case 1:
		return participations[0], nil
	}
	return nil, newError(op, KindMalformed, errors.Wrapf(ErrMalformed, "%d participations numbered %d in raffle %d", len(participations), participantNo, raffleNo))
}

func (c *Client) scanParticipations(ctx context.Context, op string, filters ...solana.ProgramAccountFilter) ([]*Participation, error) {
	filters = append([]solana.ProgramAccountFilter{solana.NewDataSizeFilter(raffle_program.ParticipationAccountSize)}, filters...)

	accounts, err := c.scan(ctx, op, filters...)
	if err != nil {
		return nil, err
	}

	res := make([]*Participation, 0, len(accounts))
	for _, keyed := range accounts {
		var account raffle_program.ParticipationAccount
		if err := account.Unmarshal(keyed.Account.Data); err != nil {
			return nil, newError(op, KindMalformed, errors.Wrapf(err, "invalid participation %s", base58.Encode(keyed.PublicKey)))
		}
		res = append(res, &Participation{Address: keyed.PublicKey, Account: &account})
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].Account.RaffleNo != res[j].Account.RaffleNo {
			return res[i].Account.RaffleNo < res[j].Account.RaffleNo
		}
		return res[i].Account.ParticipantNo < res[j].Account.ParticipantNo
	})
	return res, nil
}

// GetMint returns the owning token program and decimals of mint.
func (c *Client) GetMint(ctx context.Context, mint ed25519.PublicKey) (*Mint, error) {
	const op = "get_mint"

	key := base58.Encode(mint)
	if cached, ok := c.mints.Retrieve(key); ok {
		return cached.(*Mint), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, newError(op, KindUnknown, err)
	}

	info, err := c.tc.GetMint(mint)
	if err != nil {
		return nil, classify(op, errors.Wrapf(err, "mint %s", key))
	}

	// Concurrent lookups may race to insert the same mint
	_ = c.mints.Insert(key, info, 1)
	return info, nil
}

// GetTokenBalance returns the balance, in base units, of the wallet's
// associated token account for mint.
func (c *Client) GetTokenBalance(ctx context.Context, wallet, mint ed25519.PublicKey) (uint64, *Mint, error) {
	const op = "get_token_balance"

	mintInfo, err := c.GetMint(ctx, mint)
	if err != nil {
		return 0, nil, err
	}

	ata, err := associatedAccount(wallet, mintInfo)
	if err != nil {
		return 0, nil, newError(op, KindUnknown, err)
	}

	if err := ctx.Err(); err != nil {
		return 0, nil, newError(op, KindUnknown, err)
	}

	balance, _, err := c.sc.GetTokenAccountBalance(ata)
	if err == solana.ErrNoBalance {
		return 0, mintInfo, newError(op, KindNotFound, errors.Wrapf(ErrAccountNotFound, "token account %s", base58.Encode(ata)))
	} else if err != nil {
		return 0, nil, newError(op, KindRPC, err)
	}
	return balance, mintInfo, nil
}

func (c *Client) fetch(ctx context.Context, op string, address ed25519.PublicKey, dst unmarshaler) (solana.AccountInfo, error) {
	if err := ctx.Err(); err != nil {
		return solana.AccountInfo{}, newError(op, KindUnknown, err)
	}

	info, err := c.sc.GetAccountInfo(address, c.commitment)
	if err == solana.ErrNoAccountInfo {
		return solana.AccountInfo{}, newError(op, KindNotFound, errors.Wrap(ErrAccountNotFound, base58.Encode(address)))
	} else if err != nil {
		return solana.AccountInfo{}, newError(op, KindRPC, err)
	}

	if !bytes.Equal(info.Owner, c.program()) {
		return solana.AccountInfo{}, newError(op, KindMalformed, errors.Wrapf(ErrMalformed, "%s is not owned by the raffle program", base58.Encode(address)))
	}

	if err := dst.Unmarshal(info.Data); err != nil {
		return solana.AccountInfo{}, newError(op, KindMalformed, errors.Wrapf(err, "invalid account %s", base58.Encode(address)))
	}
	return info, nil
}

func (c *Client) scan(ctx context.Context, op string, filters ...solana.ProgramAccountFilter) ([]solana.KeyedAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError(op, KindUnknown, err)
	}

	accounts, err := c.sc.GetProgramAccounts(c.program(), c.commitment, filters...)
	if err != nil {
		return nil, newError(op, KindRPC, err)
	}
	return accounts, nil
}
