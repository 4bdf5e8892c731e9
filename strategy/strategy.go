// Package strategy turns ledger rankings and liquidity verdicts into
// one buy and one sell recommendation per evaluation cycle, and
// validates execution requests before they reach the ledger.
package strategy

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/etfdesk/ledger"
	"github.com/rustyeddy/etfdesk/volume"
	"github.com/shopspring/decimal"
)

type Action string

const (
	ActionBuyNew      Action = "buy_new"
	ActionAverageDown Action = "average_down"
	ActionSell        Action = "sell"
	ActionNone        Action = "no_action"
)

// Params are the tunables of the recommendation pipeline.
type Params struct {
	TopRanks           int
	AveragingThreshold decimal.Decimal
	ProfitThreshold    decimal.Decimal
	MaxOrderQuantity   int64
	PriceCeiling       decimal.Decimal
}

// DefaultParams: consider the top 5 ranks, average down at -2.5%, sell
// at +6%, reject orders above 10,000 units or ₹1,00,000 per unit.
func DefaultParams() Params {
	return Params{
		TopRanks:           5,
		AveragingThreshold: ledger.DefaultAveragingThreshold,
		ProfitThreshold:    ledger.DefaultProfitThreshold,
		MaxOrderQuantity:   10_000,
		PriceCeiling:       decimal.NewFromInt(100_000),
	}
}

// Advice is one recommendation. Fields beyond Action/Symbol/Reason are
// populated per action: rank and deviation for buy_new, loss percent
// for average_down, profit percent and the lot for sell.
type Advice struct {
	Action        Action
	Symbol        string
	Rank          int
	Price         decimal.Decimal
	DMA20         decimal.Decimal
	Deviation     decimal.Decimal
	LossPercent   decimal.Decimal
	ProfitPercent decimal.Decimal
	Lot           *ledger.Lot
	Reason        string
}

// Engine evaluates recommendations fresh on every call; it keeps no
// state of its own beyond its collaborators and parameters.
type Engine struct {
	ledger *ledger.Ledger
	filter *volume.Filter
	params Params
}

func New(l *ledger.Ledger, f *volume.Filter, p Params) *Engine {
	if p.TopRanks <= 0 {
		p.TopRanks = DefaultParams().TopRanks
	}
	return &Engine{ledger: l, filter: f, params: p}
}

// BuyAdvice walks the pipeline: rank, intersect with the liquidity
// filter, scan the top ranks for an unheld instrument, fall back to
// averaging down, otherwise no action.
func (e *Engine) BuyAdvice() Advice {
	rankings := e.ledger.Rankings()
	if len(rankings) == 0 {
		return Advice{
			Action: ActionNone,
			Reason: "no instrument has both a price and a moving average",
		}
	}

	if e.filter != nil && e.filter.Enabled() {
		filtered := rankings[:0:0]
		for _, r := range rankings {
			if e.filter.IsQualified(r.Symbol) {
				filtered = append(filtered, r)
			}
		}
		if len(filtered) == 0 {
			return Advice{
				Action: ActionNone,
				Reason: fmt.Sprintf("no instrument meets the minimum volume threshold (%d)", e.filter.Threshold()),
			}
		}
		rankings = filtered
	}

	top := rankings
	if len(top) > e.params.TopRanks {
		top = top[:e.params.TopRanks]
	}

	holdings := e.ledger.Holdings()
	for i, r := range top {
		if _, held := holdings[r.Symbol]; held {
			continue
		}
		return Advice{
			Action:    ActionBuyNew,
			Symbol:    r.Symbol,
			Rank:      i + 1,
			Price:     r.Price,
			DMA20:     r.DMA20,
			Deviation: r.Deviation,
			Reason:    fmt.Sprintf("new instrument at rank %d, deviation %s%%", i+1, r.Deviation.StringFixed(2)),
		}
	}

	if candidates := e.ledger.ForAveraging(e.params.AveragingThreshold); len(candidates) > 0 {
		c := candidates[0]
		return Advice{
			Action:      ActionAverageDown,
			Symbol:      c.Symbol,
			Price:       c.Price,
			LossPercent: c.LossPercent,
			Reason:      fmt.Sprintf("average down on %s, current loss %s%%", c.Symbol, c.LossPercent.StringFixed(2)),
		}
	}

	return Advice{
		Action: ActionNone,
		Reason: "all top-ranked instruments are held and none qualifies for averaging down",
	}
}

// SellAdvice recommends the best-profit LIFO candidate, if any.
func (e *Engine) SellAdvice() Advice {
	candidates := e.ledger.ForSelling(e.params.ProfitThreshold)
	if len(candidates) == 0 {
		return Advice{
			Action: ActionNone,
			Reason: "no holding meets the profit threshold",
		}
	}

	c := candidates[0]
	lot := c.Lot
	return Advice{
		Action:        ActionSell,
		Symbol:        c.Symbol,
		Price:         c.Price,
		ProfitPercent: c.ProfitPercent,
		Lot:           &lot,
		Reason:        fmt.Sprintf("sell %s at %s%% profit", c.Symbol, c.ProfitPercent.StringFixed(2)),
	}
}

// DailyAdvice bundles both recommendations with the context a front
// end displays next to them.
type DailyAdvice struct {
	Date        time.Time
	Buy         Advice
	Sell        Advice
	Summary     ledger.Summary
	TopRankings []ledger.Ranking
	Held        []string
}

func (e *Engine) Advise() DailyAdvice {
	rankings := e.ledger.Rankings()
	if len(rankings) > 10 {
		rankings = rankings[:10]
	}

	held := make([]string, 0)
	for sym := range e.ledger.Holdings() {
		held = append(held, sym)
	}
	sort.Strings(held)

	return DailyAdvice{
		Date:        time.Now(),
		Buy:         e.BuyAdvice(),
		Sell:        e.SellAdvice(),
		Summary:     e.ledger.Summary(),
		TopRankings: rankings,
		Held:        held,
	}
}

// ExecuteBuy validates the fill against the order bounds and delegates
// to the ledger. Only buy_new and average_down advice may be executed.
func (e *Engine) ExecuteBuy(a Advice, quantity int64, price decimal.Decimal, date time.Time) (ledger.Transaction, error) {
	if a.Action != ActionBuyNew && a.Action != ActionAverageDown {
		return ledger.Transaction{}, fmt.Errorf("advice action %q is not a buy: %w", a.Action, ledger.ErrInvalidInput)
	}
	if err := e.validateOrder(quantity, price); err != nil {
		return ledger.Transaction{}, err
	}
	return e.ledger.RecordBuy(a.Symbol, quantity, price, date)
}

// ExecuteSell validates the fill and delegates to the ledger's LIFO
// sell. ErrNotFound from the ledger passes through so callers can tell
// "no holding" from "executed".
func (e *Engine) ExecuteSell(a Advice, quantity int64, price decimal.Decimal, date time.Time) (*ledger.Transaction, error) {
	if a.Action != ActionSell {
		return nil, fmt.Errorf("advice action %q is not a sell: %w", a.Action, ledger.ErrInvalidInput)
	}
	if err := e.validateOrder(quantity, price); err != nil {
		return nil, err
	}
	return e.ledger.RecordSell(a.Symbol, quantity, price, date)
}

func (e *Engine) validateOrder(quantity int64, price decimal.Decimal) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d: %w", quantity, ledger.ErrInvalidInput)
	}
	if quantity > e.params.MaxOrderQuantity {
		return fmt.Errorf("quantity %d above limit %d: %w", quantity, e.params.MaxOrderQuantity, ledger.ErrInvalidInput)
	}
	if !price.IsPositive() {
		return fmt.Errorf("price must be positive, got %s: %w", price, ledger.ErrInvalidInput)
	}
	if price.Cmp(e.params.PriceCeiling) > 0 {
		return fmt.Errorf("price %s above ceiling %s: %w", price, e.params.PriceCeiling, ledger.ErrInvalidInput)
	}
	return nil
}
