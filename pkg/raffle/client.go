package raffle

import (
	"crypto/ed25519"

	"github.com/sirupsen/logrus"

	"github.com/code-payments/raffle-client/pkg/cache"
	"github.com/code-payments/raffle-client/pkg/journal"
	journal_memory "github.com/code-payments/raffle-client/pkg/journal/memory"
	"github.com/code-payments/raffle-client/pkg/rate"
	"github.com/code-payments/raffle-client/pkg/solana"
	raffle_program "github.com/code-payments/raffle-client/pkg/solana/raffle"
	"github.com/code-payments/raffle-client/pkg/solana/token"
)

const (
	DefaultInitRaffleComputeUnitLimit = 500_000
	DefaultJoinRaffleComputeUnitLimit = 300_000

	mintCacheBudget = 256
)

// Client builds, signs and submits raffle program transactions and reads
// program state. Operations run one at a time per caller; nothing is retried
// and completion means the node accepted the transaction for processing.
type Client struct {
	log *logrus.Entry

	sc         solana.Client
	tc         *token.Client
	deployment raffle_program.Deployment
	commitment solana.Commitment
	pacer      rate.Pacer
	journal    journal.Store
	mints      cache.Cache

	initRaffleComputeUnitLimit uint32
	joinRaffleComputeUnitLimit uint32
}

type Option func(c *Client)

func WithDeployment(deployment raffle_program.Deployment) Option {
	return func(c *Client) {
		c.deployment = deployment
	}
}

func WithCommitment(commitment solana.Commitment) Option {
	return func(c *Client) {
		c.commitment = commitment
	}
}

// WithPacer sets the pacer consulted before every submission.
func WithPacer(pacer rate.Pacer) Option {
	return func(c *Client) {
		c.pacer = pacer
	}
}

// WithJournal sets the store receiving one record per submitted transaction.
func WithJournal(store journal.Store) Option {
	return func(c *Client) {
		c.journal = store
	}
}

// WithComputeUnitLimits overrides the compute unit limits requested by
// init_raffle and join_raffle. A zero limit omits the compute budget
// instruction.
func WithComputeUnitLimits(initRaffle, joinRaffle uint32) Option {
	return func(c *Client) {
		c.initRaffleComputeUnitLimit = initRaffle
		c.joinRaffleComputeUnitLimit = joinRaffle
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) {
		c.log = log
	}
}

func NewClient(sc solana.Client, opts ...Option) *Client {
	c := &Client{
		log:        logrus.StandardLogger().WithField("type", "raffle/client"),
		sc:         sc,
		deployment: raffle_program.B2C,
		commitment: solana.CommitmentConfirmed,
		pacer:      rate.NewIntervalPacer(rate.DefaultInterval),
		journal:    journal_memory.New(),
		mints:      cache.NewCache(mintCacheBudget),

		initRaffleComputeUnitLimit: DefaultInitRaffleComputeUnitLimit,
		joinRaffleComputeUnitLimit: DefaultJoinRaffleComputeUnitLimit,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.tc = token.NewClient(sc, c.commitment)
	c.log = c.log.WithField("deployment", c.deployment.Name)
	return c
}

func (c *Client) Deployment() raffle_program.Deployment {
	return c.deployment
}

func (c *Client) Journal() journal.Store {
	return c.journal
}

func (c *Client) program() ed25519.PublicKey {
	return c.deployment.ProgramID
}

func publicKey(key ed25519.PrivateKey) ed25519.PublicKey {
	return key.Public().(ed25519.PublicKey)
}
