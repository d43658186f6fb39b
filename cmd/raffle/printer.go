package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mr-tron/base58"

	"github.com/code-payments/raffle-client/pkg/journal"
	"github.com/code-payments/raffle-client/pkg/solana"
)

// printer centralizes output formatting across subcommands. It respects the
// root level --output flag.
type printer struct{ format string }

func getPrinter() printer { return printer{format: flagOutput} }

func (p printer) json() bool { return p.format == "json" }

func (p printer) encode(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (p printer) Signature(op string, sig solana.Signature) {
	if p.json() {
		p.encode(map[string]string{"operation": op, "signature": sig.String()})
		return
	}
	fmt.Printf("%s: %s\n", op, sig)
}

// Account prints a decoded program account under its address.
func (p printer) Account(address []byte, account fmt.Stringer) {
	if p.json() {
		p.encode(map[string]string{"address": base58.Encode(address), "account": account.String()})
		return
	}
	fmt.Printf("%s\n%s\n", base58.Encode(address), account)
}

func (p printer) Value(name string, value interface{}) {
	if p.json() {
		p.encode(map[string]interface{}{name: value})
		return
	}
	fmt.Printf("%s: %v\n", name, value)
}

func (p printer) Records(records []*journal.Record) {
	if p.json() {
		p.encode(records)
		return
	}
	for _, record := range records {
		raffleNo := "-"
		if record.RaffleNo != nil {
			raffleNo = fmt.Sprintf("%d", *record.RaffleNo)
		}
		fmt.Printf("%s  %-24s  raffle=%-6s  payer=%s  %s\n",
			record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			record.Operation,
			raffleNo,
			record.Payer,
			record.Signature,
		)
	}
}
