package extract

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/finparse/finparse/internal/classify"
)

// Config holds configuration for the extraction service.
type Config struct {
	Logger *zap.Logger
}

// Service runs the full extraction pipeline. It holds no mutable state, so
// one Service may serve any number of concurrent Extract calls.
type Service struct {
	logger *zap.Logger
}

// NewService creates an extraction service. A nil logger is replaced with a
// nop logger.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Extract runs decrypt, table scan, reconcile and classify over one
// document. It fails only for the decryption error kinds or a malformed
// document; a readable document with no extractable tables yields an empty
// slice and a nil error.
func (s *Service) Extract(ctx context.Context, data []byte, password string) (txs []Transaction, err error) {
	_ = ctx // the pipeline is CPU-bound; time-boxing is the host's concern

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("extraction panic", zap.Any("panic", r))
			txs = nil
			err = &ExtractError{Code: ErrInvalidDocument, Message: fmt.Sprintf("panic during extraction: %v", r)}
		}
	}()

	reader, err := openReader(data, password)
	if err != nil {
		return nil, err
	}

	rows := s.scanTables(reader)
	txs = reconcile(rows)
	for i := range txs {
		c := classify.Classify(txs[i].Description)
		txs[i].Category = &c
	}
	sanitize(txs)

	s.logger.Info("extraction complete",
		zap.Int("pages", reader.NumPage()),
		zap.Int("raw_rows", len(rows)),
		zap.Int("transactions", len(txs)))
	return txs, nil
}

// scanTables walks every page and collects typed rows, per-page order
// preserved. A page the pdf library cannot render contributes nothing.
func (s *Service) scanTables(reader *pdf.Reader) []Transaction {
	var rows []Transaction
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		lines, err := pageLines(page)
		if err != nil {
			s.logger.Warn("skipping unreadable page", zap.Int("page", num), zap.Error(err))
			continue
		}
		for _, t := range tablesOnPage(lines) {
			rows = append(rows, rowsFromTable(t)...)
		}
	}
	return rows
}
