// Package apptest provides a scripted database.Gateway and an Env builder for handler tests.
package apptest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"catalog-client/internal/app"
	"catalog-client/internal/console"
	"catalog-client/internal/database"
	"catalog-client/internal/session"
)

// Call is one statement seen by the Gateway.
type Call struct {
	Query string
	Args  []any
}

type response struct {
	rows     [][]string
	affected int64
	err      error
}

// Gateway answers queries by substring match. The longest matching key wins; a key with
// several scripted responses hands them out in order and then repeats the last one.
type Gateway struct {
	responses map[string][]response
	Out       io.Writer

	Queries []Call
	// Execs holds committed statements only; a rolled-back transaction removes its own.
	Execs     []Call
	Commits   int
	Rollbacks int
	// LastVal is what LastSeqVal reports; NewGateway sets it to -1.
	LastVal int
	// SeqReadsInTx counts LastSeqVal calls made while a transaction was open.
	SeqReadsInTx int

	inTx bool
}

func NewGateway(out io.Writer) *Gateway {
	return &Gateway{responses: map[string][]response{}, Out: out, LastVal: -1}
}

func (g *Gateway) OnQuery(substr string, rows ...[][]string) *Gateway {
	for _, r := range rows {
		g.responses[substr] = append(g.responses[substr], response{rows: r})
	}
	return g
}

func (g *Gateway) OnExec(substr string, affected ...int64) *Gateway {
	for _, a := range affected {
		g.responses[substr] = append(g.responses[substr], response{affected: a})
	}
	return g
}

func (g *Gateway) OnError(substr string, err error) *Gateway {
	g.responses[substr] = append(g.responses[substr], response{err: err})
	return g
}

func (g *Gateway) lookup(query string) (response, bool) {
	best := ""
	found := false
	for key := range g.responses {
		if strings.Contains(query, key) && len(key) >= len(best) {
			best = key
			found = true
		}
	}
	if !found {
		return response{}, false
	}
	queue := g.responses[best]
	r := queue[0]
	if len(queue) > 1 {
		g.responses[best] = queue[1:]
	}
	return r, true
}

func (g *Gateway) Execute(_ context.Context, query string, args ...any) (int64, error) {
	r, ok := g.lookup(query)
	if !ok {
		g.Execs = append(g.Execs, Call{Query: query, Args: args})
		return 1, nil
	}
	if r.err != nil {
		return 0, r.err
	}
	g.Execs = append(g.Execs, Call{Query: query, Args: args})
	return r.affected, nil
}

func (g *Gateway) QueryPrint(ctx context.Context, query string, args ...any) (int, error) {
	rows, err := g.QueryCollect(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		fmt.Fprintln(g.Out, strings.Join(row, "\t"))
	}
	return len(rows), nil
}

func (g *Gateway) QueryCollect(_ context.Context, query string, args ...any) ([][]string, error) {
	g.Queries = append(g.Queries, Call{Query: query, Args: args})
	r, ok := g.lookup(query)
	if !ok {
		return [][]string{}, nil
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

func (g *Gateway) QueryCount(ctx context.Context, query string, args ...any) (int, error) {
	rows, err := g.QueryCollect(ctx, query, args...)
	return len(rows), err
}

func (g *Gateway) LastSeqVal(context.Context) int {
	if g.inTx {
		g.SeqReadsInTx++
	}
	return g.LastVal
}

func (g *Gateway) Transaction(_ context.Context, fn func(tx database.Gateway) error) error {
	mark := len(g.Execs)
	g.inTx = true
	err := fn(g)
	g.inTx = false
	if err != nil {
		g.Execs = g.Execs[:mark]
		g.Rollbacks++
		return err
	}
	g.Commits++
	return nil
}

// ExecsMatching returns committed statements containing substr.
func (g *Gateway) ExecsMatching(substr string) []Call {
	var out []Call
	for _, c := range g.Execs {
		if strings.Contains(c.Query, substr) {
			out = append(out, c)
		}
	}
	return out
}

// Harness bundles an Env with its captured output.
type Harness struct {
	Env *app.Env
	DB  *Gateway
	Out *bytes.Buffer
	Err *bytes.Buffer
}

// NewHarness wires an Env reading input and, when p is non-nil, logged in as p.
func NewHarness(input string, p *session.Principal) *Harness {
	var out, errOut bytes.Buffer
	gw := NewGateway(&out)
	sess := session.New()
	if p != nil {
		sess.Login(*p)
	}
	env := &app.Env{
		DB:      gw,
		Console: console.New(strings.NewReader(input), &out, &errOut),
		Session: sess,
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return &Harness{Env: env, DB: gw, Out: &out, Err: &errOut}
}
