// Package parser turns one document's raw text into a candidate ledger
// record. Fields are extracted independently, so one field's absence never
// blocks the others; only a missing invoice number is fatal for a document.
package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/common"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
	"github.com/joseph-ayodele/invoice-ledger/internal/extract"
	"github.com/joseph-ayodele/invoice-ledger/internal/normalize"
)

// Config holds derivation rules for the parse stage.
type Config struct {
	// TaxRate is applied when no tax line was extracted (default 0.12).
	TaxRate decimal.Decimal

	// GrandTotalTolerance absorbs rounding drift between an extracted grand
	// total and subtotal+tax before a warning is raised (default 1.00).
	GrandTotalTolerance decimal.Decimal

	// CenturyPivot for two-digit years; see normalize.ParseDate.
	CenturyPivot int
}

type Parser struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TaxRate.IsZero() {
		cfg.TaxRate = decimal.RequireFromString("0.12")
	}
	if cfg.GrandTotalTolerance.IsZero() {
		cfg.GrandTotalTolerance = decimal.RequireFromString("1.00")
	}
	if cfg.CenturyPivot == 0 {
		cfg.CenturyPivot = normalize.DefaultCenturyPivot
	}
	return &Parser{cfg: cfg, logger: logger}
}

// Result is a parsed candidate record plus the fields that could not be
// recovered and any non-fatal warnings raised while deriving totals.
type Result struct {
	Invoice  *entity.Invoice
	Missing  []string
	Warnings []string
}

// ParseInvoice extracts and normalizes every schema field from document
// text. A field-local extraction or normalization failure marks the field
// missing; the record is still produced. The only fatal condition is an
// unrecoverable invoice number, reported as common.ErrMissingDedupKey.
func (p *Parser) ParseInvoice(text string) (*Result, error) {
	text = normalize.CleanText(text)
	res := &Result{Invoice: &entity.Invoice{Status: constants.StatusUnPaid}}
	inv := res.Invoice

	rawNo, ok := extract.Field(text, constants.FieldInvoiceNumber)
	if !ok || normalize.InvoiceNumber(rawNo) == "" {
		return nil, fmt.Errorf("parse invoice: %w", common.ErrMissingDedupKey)
	}
	inv.InvoiceNumber = normalize.InvoiceNumber(rawNo)

	// The tabular PO/GR header wins over flat label matches when present.
	rawPONumber, rawPODate, rawGRID, rawGRDate := "", "", "", ""
	if tf, ok := extract.POTable(text); ok {
		rawPONumber, rawPODate, rawGRID, rawGRDate = tf.PONumber, tf.PODate, tf.GRID, tf.GRDate
		p.logger.Debug("parse.table_layout", "po", rawPONumber, "gr", rawGRID)
	} else {
		rawPONumber, _ = extract.Field(text, constants.FieldPONumber)
		rawPODate, _ = extract.Field(text, constants.FieldPODate)
		rawGRID, _ = extract.Field(text, constants.FieldGRID)
		rawGRDate, _ = extract.Field(text, constants.FieldGRDate)
	}

	if rawPONumber != "" {
		inv.PONumber = normalize.PONumber(rawPONumber)
	} else {
		res.Missing = append(res.Missing, constants.FieldPONumber)
	}
	if rawGRID != "" {
		inv.GRID = strings.TrimSpace(rawGRID)
	} else {
		res.Missing = append(res.Missing, constants.FieldGRID)
	}

	if raw, ok := extract.Field(text, constants.FieldInvoiceDate); ok {
		if d, err := normalize.ParseDate(raw, p.cfg.CenturyPivot); err == nil {
			inv.InvoiceDate = d
		} else {
			res.Missing = append(res.Missing, constants.FieldInvoiceDate)
		}
	} else {
		res.Missing = append(res.Missing, constants.FieldInvoiceDate)
	}
	if rawPODate != "" {
		if d, err := normalize.ParseDate(rawPODate, p.cfg.CenturyPivot); err == nil {
			inv.PODate = d
		} else {
			res.Missing = append(res.Missing, constants.FieldPODate)
		}
	} else {
		res.Missing = append(res.Missing, constants.FieldPODate)
	}
	if rawGRDate != "" {
		if d, err := normalize.ParseDate(rawGRDate, p.cfg.CenturyPivot); err == nil {
			inv.GRDate = d
		} else {
			res.Missing = append(res.Missing, constants.FieldGRDate)
		}
	} else {
		res.Missing = append(res.Missing, constants.FieldGRDate)
	}

	if raw, ok := extract.Field(text, constants.FieldDepartment); ok {
		inv.Department = strings.TrimSpace(raw)
	}

	subtotalKnown := false
	if raw, ok := extract.Field(text, constants.FieldSubtotal); ok {
		if d, err := normalize.ParseAmount(raw); err == nil {
			inv.Subtotal = d.Round(2)
			subtotalKnown = true
		}
	}
	if !subtotalKnown {
		res.Missing = append(res.Missing, constants.FieldSubtotal)
	}

	taxExtracted := false
	if raw, ok := extract.Field(text, constants.FieldTax); ok {
		if d, err := normalize.ParseAmount(raw); err == nil {
			inv.Tax = d.Round(2)
			taxExtracted = true
		}
	}
	if !taxExtracted && subtotalKnown {
		inv.Tax = inv.Subtotal.Mul(p.cfg.TaxRate).Round(2)
	}

	derived := inv.Subtotal.Add(inv.Tax)
	if raw, ok := extract.Field(text, constants.FieldGrandTotal); ok {
		if d, err := normalize.ParseAmount(raw); err == nil {
			// extracted value is authoritative
			inv.GrandTotal = d.Round(2)
			if subtotalKnown && inv.GrandTotal.Sub(derived).Abs().GreaterThan(p.cfg.GrandTotalTolerance) {
				w := fmt.Sprintf("grand total %s differs from subtotal+tax %s", inv.GrandTotal, derived)
				res.Warnings = append(res.Warnings, w)
				p.logger.Warn("parse.grand_total_mismatch",
					"invoice_number", inv.InvoiceNumber,
					"extracted", inv.GrandTotal.String(),
					"derived", derived.String(),
				)
			}
		}
	}
	if inv.GrandTotal.IsZero() && subtotalKnown {
		inv.GrandTotal = derived
	}

	if raw, ok := extract.Field(text, constants.FieldStatus); ok {
		if strings.EqualFold(strings.ReplaceAll(raw, " ", ""), "paid") {
			inv.Status = constants.StatusPaid
		}
	}

	if err := ValidateRecord(inv); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("record validation: %v", err))
		p.logger.Warn("parse.validation_failed", "invoice_number", inv.InvoiceNumber, "error", err)
	}

	p.logger.Info("parse.ok",
		"invoice_number", inv.InvoiceNumber,
		"po_number", inv.PONumber,
		"gr_id", inv.GRID,
		"subtotal", inv.Subtotal.String(),
		"grand_total", inv.GrandTotal.String(),
		"missing", res.Missing,
	)
	return res, nil
}

// ParsePurchaseOrder handles standalone purchase-order documents. The PO
// number is the table key and therefore required; everything else degrades
// to empty.
func (p *Parser) ParsePurchaseOrder(text string) (*entity.PurchaseOrder, []string, error) {
	text = normalize.CleanText(text)
	var missing []string
	po := &entity.PurchaseOrder{}

	raw, ok := extract.Field(text, constants.FieldPONumber)
	if !ok || normalize.PONumber(raw) == "" {
		return nil, nil, fmt.Errorf("parse purchase order: %w", common.ErrMissingDedupKey)
	}
	po.PONumber = normalize.PONumber(raw)

	if raw, ok := extract.Field(text, constants.FieldPODate); ok {
		if d, err := normalize.ParseDate(raw, p.cfg.CenturyPivot); err == nil {
			po.PODate = d
		} else {
			missing = append(missing, constants.FieldPODate)
		}
	} else {
		missing = append(missing, constants.FieldPODate)
	}
	if raw, ok := extract.Field(text, constants.FieldPOAmount); ok {
		if d, err := normalize.ParseAmount(raw); err == nil {
			po.POAmount = d.Round(2)
		} else {
			missing = append(missing, constants.FieldPOAmount)
		}
	} else {
		missing = append(missing, constants.FieldPOAmount)
	}
	if raw, ok := extract.Field(text, constants.FieldDepartment); ok {
		po.Department = strings.TrimSpace(raw)
	} else {
		missing = append(missing, constants.FieldDepartment)
	}

	p.logger.Info("parse.po.ok", "po_number", po.PONumber, "missing", missing)
	return po, missing, nil
}
