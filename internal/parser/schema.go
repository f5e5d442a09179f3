package parser

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
)

// buildInvoiceJSONSchema returns the JSON-Schema the candidate record is
// checked against before it is handed to the reconciler.
func buildInvoiceJSONSchema() map[string]any {
	props := map[string]any{
		"invoice_number": map[string]any{"type": "string", "pattern": `^[A-Z]*\d+$`},
		"invoice_date":   dateProp(),
		"po_number":      map[string]any{"type": "string", "pattern": `^[A-Z]*\d+$`},
		"po_date":        dateProp(),
		"department":     map[string]any{"type": "string"},
		"gr_id":          map[string]any{"type": "string", "pattern": `^\d+$`},
		"gr_date":        dateProp(),
		"subtotal":       decimalProp(),
		"tax":            decimalProp(),
		"grand_total":    decimalProp(),
		"status": map[string]any{
			"type": "string",
			"enum": []string{string(constants.StatusPaid), string(constants.StatusUnPaid)},
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"invoice_number", "subtotal", "tax", "grand_total", "status"},
	}
}

func dateProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}
}

func decimalProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^-?\d+(\.\d{1,2})?$`}
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := json.Marshal(buildInvoiceJSONSchema())
		if err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = jsonschema.CompileString("invoice.schema.json", string(raw))
	})
	return schema, schemaErr
}

// ValidateRecord checks a candidate invoice against the record schema.
// Dates and amounts are rendered to their canonical string forms first, so
// a failure here means the parser produced something structurally off, not
// that a field was missing.
func ValidateRecord(inv *entity.Invoice) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	doc := map[string]any{
		"invoice_number": inv.InvoiceNumber,
		"subtotal":       inv.Subtotal.String(),
		"tax":            inv.Tax.String(),
		"grand_total":    inv.GrandTotal.String(),
		"status":         string(inv.Status),
	}
	if !inv.InvoiceDate.IsZero() {
		doc["invoice_date"] = inv.InvoiceDate.Format("2006-01-02")
	}
	if inv.PONumber != "" {
		doc["po_number"] = inv.PONumber
	}
	if !inv.PODate.IsZero() {
		doc["po_date"] = inv.PODate.Format("2006-01-02")
	}
	if inv.Department != "" {
		doc["department"] = inv.Department
	}
	if inv.GRID != "" {
		doc["gr_id"] = inv.GRID
	}
	if !inv.GRDate.IsZero() {
		doc["gr_date"] = inv.GRDate.Format("2006-01-02")
	}

	return sch.Validate(doc)
}
