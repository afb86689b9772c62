// Package export renders the final account snapshot as a CSV table.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/warp/payments-engine/engine"
)

// Write renders one row per account: client, available, held, total,
// locked. Rows arrive already ordered and rounded by the snapshot.
func Write(w io.Writer, accounts []engine.AccountSnapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, acct := range accounts {
		row := []string{
			strconv.FormatUint(uint64(acct.Client), 10),
			acct.Available.StringFixed4(),
			acct.Held.StringFixed4(),
			acct.Total.StringFixed4(),
			strconv.FormatBool(acct.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
