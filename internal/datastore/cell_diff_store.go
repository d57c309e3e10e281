package datastore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/config"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// CellDiffFileName is the export file written per comparison
const CellDiffFileName = "cell_diffs.parquet"

// CellDiffRecord is one row of the cell diff export.
// Shape notes are stored as a row with Row and Col set to -1.
type CellDiffRecord struct {
	ComparisonID string  `parquet:"comparison_id"`
	Page         int32   `parquet:"page"`
	TableIndex   int32   `parquet:"table_index"`
	Row          int32   `parquet:"row"`
	Col          int32   `parquet:"col"`
	ValueA       *string `parquet:"value_a,optional"`
	ValueB       *string `parquet:"value_b,optional"`
	Note         *string `parquet:"note,optional"`
}

// ParquetCellDiffStore exports sampled table cell differences to Parquet files
type ParquetCellDiffStore struct {
	config      config.StorageConfig
	logger      zerolog.Logger
	fileManager *common.FileManager
}

// NewParquetCellDiffStore creates a store rooted at cfg.ParquetBasePath
func NewParquetCellDiffStore(cfg config.StorageConfig, logger zerolog.Logger) (*ParquetCellDiffStore, error) {
	logger = logger.With().Str("component", "CellDiffStore").Logger()
	if cfg.ParquetBasePath == "" {
		return nil, common.NewValidationError("parquet_base_path", cfg.ParquetBasePath, "ParquetBasePath is not configured")
	}
	return &ParquetCellDiffStore{
		config:      cfg,
		logger:      logger,
		fileManager: common.NewFileManager(logger),
	}, nil
}

// FilePath returns where the export of a comparison lives
func (s *ParquetCellDiffStore) FilePath(comparisonID string) string {
	return filepath.Join(s.config.ParquetBasePath, sanitizeID(comparisonID), CellDiffFileName)
}

// Write stores every sampled cell diff and shape note of the entries.
// It returns the number of records written.
func (s *ParquetCellDiffStore) Write(ctx context.Context, comparisonID string, entries []models.TableDiffEntry) (int, error) {
	if sanitizeID(comparisonID) == "" {
		return 0, common.NewValidationError("comparison_id", comparisonID, "comparison ID is empty")
	}

	records := ToCellDiffRecords(comparisonID, entries)
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	filePath := s.FilePath(comparisonID)
	if err := s.fileManager.EnsureDirectory(filepath.Dir(filePath), common.DirPermissions); err != nil {
		return 0, err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return 0, common.WrapError(err, "failed to create parquet file: "+filePath)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[CellDiffRecord](file, s.compressionOption())
	written, err := writer.Write(records)
	if err != nil {
		_ = writer.Close()
		return 0, common.WrapError(err, "failed to write cell diffs to parquet file")
	}
	if err := writer.Close(); err != nil {
		return 0, common.WrapError(err, "failed to finalize parquet file")
	}

	s.logger.Info().
		Str("file_path", filePath).
		Int("records_written", written).
		Msg("Wrote cell diffs to Parquet file")
	return written, nil
}

// Read loads the export of a comparison
func (s *ParquetCellDiffStore) Read(ctx context.Context, comparisonID string) ([]CellDiffRecord, error) {
	filePath := s.FilePath(comparisonID)
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.WrapErrorf(ErrRecordNotFound, "cell diffs of comparison %s", comparisonID)
		}
		return nil, common.WrapError(err, "failed to open parquet file: "+filePath)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[CellDiffRecord](file)
	defer func() { _ = reader.Close() }()

	records := make([]CellDiffRecord, reader.NumRows())
	if len(records) == 0 {
		return records, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := reader.Read(records)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, common.WrapError(err, "failed to read parquet rows")
	}
	return records[:n], nil
}

func (s *ParquetCellDiffStore) compressionOption() parquet.WriterOption {
	switch strings.ToLower(s.config.CompressionCodec) {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "none", "uncompressed":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}

// ToCellDiffRecords flattens table diff entries in report order
func ToCellDiffRecords(comparisonID string, entries []models.TableDiffEntry) []CellDiffRecord {
	records := []CellDiffRecord{}
	for _, entry := range entries {
		base := CellDiffRecord{
			ComparisonID: comparisonID,
			Page:         int32(entry.Page),
			TableIndex:   int32(entry.TableIndex),
		}

		if entry.Note != nil {
			rec := base
			rec.Row, rec.Col = -1, -1
			note := entry.Note.Note + ": A" + entry.Note.AShape.String() + " B" + entry.Note.BShape.String()
			rec.Note = &note
			records = append(records, rec)
			continue
		}

		for _, cd := range entry.CellDiffs {
			rec := base
			rec.Row, rec.Col = int32(cd.Row), int32(cd.Col)
			a, b := cd.A, cd.B
			rec.ValueA, rec.ValueB = &a, &b
			records = append(records, rec)
		}
	}
	return records
}

func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, id)
}
