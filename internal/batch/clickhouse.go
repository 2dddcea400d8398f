package batch

import (
	"context"
	"fmt"

	"orb/firescout/pkg/config"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/ClickHouse/clickhouse-go/v2/lib/proto"
	"go.uber.org/zap"
)

// Sink persists batch results to a ClickHouse table.
type Sink struct {
	conn      driver.Conn
	tableName string
}

func NewSink(cfg config.SinkConfig) (
	sink *Sink,
	version *proto.ServerHandshake,
	err error,
) {
	zap.S().Debug("opening connection to the ClickHouse")
	conn, err := clickhouse.Open(
		&clickhouse.Options{
			Addr: []string{
				fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			},
			Auth: clickhouse.Auth{
				Database: cfg.Database,
				Username: cfg.Username,
				Password: cfg.Password,
			},
		},
	)
	if err != nil {
		zap.S().Errorw(
			"opening connection to the ClickHouse",
			"error", err,
		)
		return nil, nil, err
	}
	version, err = conn.ServerVersion()
	if err != nil {
		zap.S().Errorw(
			"retrieving ClickHouse server version",
			"error", err,
		)
		return nil, nil, err
	}
	return &Sink{
		conn:      conn,
		tableName: cfg.Table,
	}, version, nil
}

func (s *Sink) InitTable(ctx context.Context) error {
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	url String,
	success Bool,
	status_code Int32,
	title String,
	markdown String,
	error String,
	elapsed_ms Int64,
	tag String,
	ts DateTime
) ENGINE = MergeTree()
ORDER BY (url, ts)`, s.tableName)
	return s.conn.Exec(ctx, query)
}

func (s *Sink) InsertBatch(ctx context.Context, batch []Result) error {
	query := fmt.Sprintf("INSERT INTO %s", s.tableName)
	zap.S().Debugw(
		"sending query to the database",
		"query", query,
	)
	batchBuilder, err := s.conn.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	for i := range batch {
		if err := batchBuilder.AppendStruct(&batch[i]); err != nil {
			return err
		}
	}
	return batchBuilder.Send()
}
