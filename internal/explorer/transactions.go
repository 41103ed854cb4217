package explorer

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// pageLimit is the maximum page size the explorer accepts.
const pageLimit = 500

// HistoryOptions controls a full-history download.
type HistoryOptions struct {
	// Cutoff stops pagination once transactions older than this time are
	// reached. Zero means no cutoff.
	Cutoff time.Time
	// MaxPages bounds the number of page requests. Zero means the
	// default of 100000.
	MaxPages int
	// Before is the start cursor in unix millis. Zero means "now".
	Before int64
}

// TransactionsPage fetches one page of accepted transactions touching
// address, newest first, strictly older pages reached via the before
// cursor (unix millis).
func (c *Client) TransactionsPage(ctx context.Context, address string, before int64) ([]Transaction, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(pageLimit))
	query.Set("before", strconv.FormatInt(before, 10))
	query.Set("resolve_previous_outpoints", "full")
	query.Set("acceptance", "accepted")

	var txs []Transaction
	path := "/addresses/" + url.PathEscape(address) + "/full-transactions-page"
	if err := c.get(ctx, path, query, &txs); err != nil {
		return nil, fmt.Errorf("get transactions page: %w", err)
	}

	return txs, nil
}

// History downloads the full accepted-transaction history for address by
// paginating backwards from now, returning the transactions and the
// number of pages requested. Transactions are deduplicated by id: pages
// cursor on block time, so a block time shared across a page boundary
// repeats entries.
func (c *Client) History(ctx context.Context, address string, opts HistoryOptions) ([]Transaction, int, error) {
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = 100000
	}
	before := opts.Before
	if before == 0 {
		before = time.Now().UTC().UnixMilli()
	}

	var all []Transaction
	seen := make(map[string]bool)
	pages := 0

	for page := 0; page < maxPages; page++ {
		c.logger.Debug("fetching transactions", "address", address, "before", before, "page", page)

		txs, err := c.TransactionsPage(ctx, address, before)
		pages++
		if err != nil {
			return all, pages, fmt.Errorf("page %d (before=%d): %w", page, before, err)
		}
		if len(txs) == 0 {
			break
		}

		reachedCutoff := false
		for _, tx := range txs {
			if !opts.Cutoff.IsZero() && tx.Time().Before(opts.Cutoff) {
				reachedCutoff = true
				break
			}
			if seen[tx.TransactionID] {
				continue
			}
			seen[tx.TransactionID] = true
			all = append(all, tx)
		}
		if reachedCutoff {
			c.logger.Debug("reached cutoff", "cutoff", opts.Cutoff)
			break
		}

		next := txs[len(txs)-1].BlockTime
		if next >= before {
			// Cursor did not advance; a full page shares one block time.
			// Step past it rather than loop forever.
			next = before - 1
		}
		before = next
	}

	return all, pages, nil
}
