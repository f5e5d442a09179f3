package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
	"github.com/joseph-ayodele/invoice-ledger/internal/ledger"
	"github.com/joseph-ayodele/invoice-ledger/internal/normalize"
)

const (
	poSheet      = "PO_Details"
	invoiceSheet = "Invoice_Details"

	// cell formats
	dateLayout = "02-Jan-2006"
	emptyDept  = "N/A"
)

var poHeaders = []string{"Serial Number", "PO Number", "PO Date", "PO Amount", "Department"}

var invoiceHeaders = []string{
	"Serial Number", "Invoice Number", "Invoice Date", "PO Number",
	"PO Date", "Department", "GR ID", "GR Date", "Subtotal",
	"Tax", "Grand Total", "Status",
}

// XLSXStore keeps the ledger in a workbook with one sheet per table,
// matching the layout accountants already open in Excel.
type XLSXStore struct {
	path   string
	logger *slog.Logger
}

func NewXLSXStore(path string, logger *slog.Logger) *XLSXStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXStore{path: path, logger: logger}
}

// Load reads both sheets. A missing workbook yields an empty ledger; the
// file is created on the first Save.
func (s *XLSXStore) Load(_ context.Context) (*ledger.Ledger, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("ledger.xlsx.new", "path", s.path)
		return ledger.New(nil, nil), nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("ledger.xlsx.close_failed", "error", cerr)
		}
	}()

	pos, err := s.loadPOs(f)
	if err != nil {
		return nil, err
	}
	invoices, err := s.loadInvoices(f)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ledger.xlsx.loaded", "path", s.path, "pos", len(pos), "invoices", len(invoices))
	return ledger.New(pos, invoices), nil
}

func (s *XLSXStore) loadPOs(f *excelize.File) ([]entity.PurchaseOrder, error) {
	rows, err := f.GetRows(poSheet)
	if err != nil {
		// sheet absent in a hand-made workbook: treat as empty table
		return nil, nil
	}
	var out []entity.PurchaseOrder
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		serial, err := strconv.Atoi(cell(row, 0))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: serial: %w", poSheet, i+1, err)
		}
		out = append(out, entity.PurchaseOrder{
			SerialNumber: serial,
			PONumber:     cell(row, 1),
			PODate:       parseCellDate(cell(row, 2)),
			POAmount:     parseCellAmount(cell(row, 3)),
			Department:   parseDept(cell(row, 4)),
		})
	}
	return out, nil
}

func (s *XLSXStore) loadInvoices(f *excelize.File) ([]entity.Invoice, error) {
	rows, err := f.GetRows(invoiceSheet)
	if err != nil {
		return nil, nil
	}
	var out []entity.Invoice
	for i, row := range rows {
		if i == 0 {
			continue
		}
		serial, err := strconv.Atoi(cell(row, 0))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: serial: %w", invoiceSheet, i+1, err)
		}
		status := constants.InvoiceStatus(cell(row, 11))
		if status != constants.StatusPaid {
			status = constants.StatusUnPaid
		}
		out = append(out, entity.Invoice{
			SerialNumber:  serial,
			InvoiceNumber: cell(row, 1),
			InvoiceDate:   parseCellDate(cell(row, 2)),
			PONumber:      cell(row, 3),
			PODate:        parseCellDate(cell(row, 4)),
			Department:    parseDept(cell(row, 5)),
			GRID:          cell(row, 6),
			GRDate:        parseCellDate(cell(row, 7)),
			Subtotal:      parseCellAmount(cell(row, 8)),
			Tax:           parseCellAmount(cell(row, 9)),
			GrandTotal:    parseCellAmount(cell(row, 10)),
			Status:        status,
		})
	}
	return out, nil
}

// Save writes the full ledger to a fresh workbook and replaces the file.
func (s *XLSXStore) Save(_ context.Context, l *ledger.Ledger) error {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("ledger.xlsx.close_failed", "error", cerr)
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := s.writePOSheet(f, l.PurchaseOrders(), headerStyle); err != nil {
		return err
	}
	if err := s.writeInvoiceSheet(f, l.Invoices(), headerStyle); err != nil {
		return err
	}

	// drop the default sheet excelize creates
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	s.logger.Info("ledger.xlsx.saved",
		"path", s.path,
		"pos", len(l.PurchaseOrders()),
		"invoices", len(l.Invoices()),
	)
	return nil
}

func (s *XLSXStore) writePOSheet(f *excelize.File, pos []entity.PurchaseOrder, headerStyle int) error {
	if _, err := f.NewSheet(poSheet); err != nil {
		return err
	}
	writeHeader(f, poSheet, poHeaders, headerStyle)
	for i, po := range pos {
		row := i + 2
		writeRow(f, poSheet, row, []any{
			po.SerialNumber,
			po.PONumber,
			fmtDate(po.PODate),
			po.POAmount.StringFixed(2),
			fmtDept(po.Department),
		})
	}
	_ = f.SetColWidth(poSheet, "A", "A", 14)
	_ = f.SetColWidth(poSheet, "B", "B", 16)
	_ = f.SetColWidth(poSheet, "C", "C", 14)
	_ = f.SetColWidth(poSheet, "D", "D", 14)
	_ = f.SetColWidth(poSheet, "E", "E", 18)
	return nil
}

func (s *XLSXStore) writeInvoiceSheet(f *excelize.File, invoices []entity.Invoice, headerStyle int) error {
	if _, err := f.NewSheet(invoiceSheet); err != nil {
		return err
	}
	writeHeader(f, invoiceSheet, invoiceHeaders, headerStyle)
	for i, inv := range invoices {
		row := i + 2
		writeRow(f, invoiceSheet, row, []any{
			inv.SerialNumber,
			inv.InvoiceNumber,
			fmtDate(inv.InvoiceDate),
			inv.PONumber,
			fmtDate(inv.PODate),
			fmtDept(inv.Department),
			inv.GRID,
			fmtDate(inv.GRDate),
			inv.Subtotal.StringFixed(2),
			inv.Tax.StringFixed(2),
			inv.GrandTotal.StringFixed(2),
			string(inv.Status),
		})
	}
	_ = f.SetColWidth(invoiceSheet, "A", "A", 14)
	_ = f.SetColWidth(invoiceSheet, "B", "B", 16)
	_ = f.SetColWidth(invoiceSheet, "C", "H", 14)
	_ = f.SetColWidth(invoiceSheet, "I", "K", 14)
	_ = f.SetColWidth(invoiceSheet, "L", "L", 10)
	return nil
}

func (s *XLSXStore) Close() error { return nil }

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, c, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheet, "A1", last, style)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		c, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, c, v)
	}
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseCellDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := normalize.ParseDate(s, normalize.DefaultCenturyPivot); err == nil {
		return t
	}
	return time.Time{}
}

func parseCellAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Decimal{}
	}
	if d, err := normalize.ParseAmount(s); err == nil {
		return d
	}
	return decimal.Decimal{}
}

func fmtDept(d string) string {
	if d == "" {
		return emptyDept
	}
	return d
}

func parseDept(s string) string {
	if s == emptyDept {
		return ""
	}
	return s
}
