// Package archive stores game transcripts in a parquet file, one row per game.
package archive

import (
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/benbeisheim/chessrules/internal/rules"
)

type Record struct {
	GameID        string `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Moves         string `parquet:"name=moves, type=BYTE_ARRAY, convertedtype=UTF8"`
	MoveCount     int32  `parquet:"name=move_count, type=INT32"`
	ToMove        string `parquet:"name=to_move, type=BYTE_ARRAY, convertedtype=UTF8"`
	CapturedCount int32  `parquet:"name=captured_count, type=INT32"`
	ArchivedAt    int64  `parquet:"name=archived_at, type=INT64"`
}

// FromState summarises state as an archive row. Moves is the space separated
// transcript; MoveCount counts history records, which can exceed the number
// of transcript entries when some record cannot be rendered.
func FromState(gameID string, state rules.GameState, at time.Time) Record {
	return Record{
		GameID:        gameID,
		Moves:         strings.Join(rules.Transcript(state), " "),
		MoveCount:     int32(len(state.History)),
		ToMove:        state.ToMove.String(),
		CapturedCount: int32(len(state.CapturedPieces)),
		ArchivedAt:    at.Unix(),
	}
}

// Transcript splits Moves back into notation strings.
func (r Record) Transcript() []string {
	return strings.Fields(r.Moves)
}

// Write replaces the file at path with records.
func Write(path string, records []Record, parallel int64) (err error) {
	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return errors.Wrapf(err, "create archive %s", path)
	}
	defer func() {
		if cerr := fileWriter.Close(); cerr != nil {
			err = multierror.Append(err, errors.Wrap(cerr, "close archive")).ErrorOrNil()
		}
	}()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(Record), parallel)
	if err != nil {
		return errors.Wrap(err, "create parquet writer")
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, record := range records {
		if err := parquetWriter.Write(record); err != nil {
			return errors.Wrapf(err, "write game %s", record.GameID)
		}
	}
	return errors.Wrap(parquetWriter.WriteStop(), "finish archive")
}

func Read(path string, parallel int64) ([]Record, error) {
	fileReader, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open archive %s", path)
	}
	defer fileReader.Close()

	parquetReader, err := reader.NewParquetReader(fileReader, new(Record), parallel)
	if err != nil {
		return nil, errors.Wrap(err, "create parquet reader")
	}
	defer parquetReader.ReadStop()

	records := make([]Record, int(parquetReader.GetNumRows()))
	if len(records) == 0 {
		return records, nil
	}
	if err := parquetReader.Read(&records); err != nil {
		return nil, errors.Wrap(err, "read archive")
	}
	return records, nil
}
