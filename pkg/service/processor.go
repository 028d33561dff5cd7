// Package service wires the pipeline: resolve profile, read the
// statement, parse rows, export QIF.
package service

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"

	"github.com/bout-dev/bout/pkg/config"
	"github.com/bout-dev/bout/pkg/models"
	"github.com/bout-dev/bout/pkg/parser"
	"github.com/bout-dev/bout/pkg/profile"
	"github.com/bout-dev/bout/pkg/qif"
	"github.com/bout-dev/bout/pkg/reader"
)

type Processor struct {
	cfg    *config.Config
	logger *log.Logger
	reader *reader.Reader
	parser *parser.Parser
}

func NewProcessor(cfg *config.Config, logger *log.Logger) *Processor {
	return &Processor{
		cfg:    cfg,
		logger: logger,
		reader: reader.New(logger),
		parser: parser.New(logger),
	}
}

// NewProcessorWithReader builds a Processor around a custom Reader,
// used by tests to inject a fake PDF extractor.
func NewProcessorWithReader(cfg *config.Config, logger *log.Logger, rd *reader.Reader) *Processor {
	return &Processor{
		cfg:    cfg,
		logger: logger,
		reader: rd,
		parser: parser.New(logger),
	}
}

// ProcessFile runs the whole pipeline for one statement file and
// writes the QIF document to w. Nothing is written unless parsing
// produced at least one transaction.
func (p *Processor) ProcessFile(path string, w io.Writer) (models.ParseStats, error) {
	prof, err := profile.Resolve(p.cfg.Profile)
	if err != nil {
		return models.ParseStats{}, err
	}
	if p.logger.GetLevel() <= log.DebugLevel {
		p.logger.Debug("resolved profile", "profile", pp.Sprint(prof))
	}

	records, err := p.reader.Read(path, prof, p.cfg.Password)
	if err != nil {
		return models.ParseStats{}, fmt.Errorf("error reading statement: %w", err)
	}

	txs, stats, err := p.parser.Parse(records, prof)
	if err != nil {
		return stats, err
	}

	account, bank := p.cfg.AccountFor(prof.Name, prof.Account, prof.Bank)

	// Render to a buffer first so a failed run leaves w untouched.
	var buf bytes.Buffer
	if err := qif.Export(&buf, txs, account, bank, prof.QIFDateFormat); err != nil {
		return stats, fmt.Errorf("error writing qif: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return stats, fmt.Errorf("error writing output: %w", err)
	}

	p.logger.Info("export complete", "transactions", stats.Parsed, "skipped", len(stats.Skipped))
	return stats, nil
}
