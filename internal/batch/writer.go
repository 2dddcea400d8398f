package batch

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

func (p *Pool) startWriter(
	wg *sync.WaitGroup,
	ctx context.Context,
	results <-chan Result,
) {
	wg.Go(func() {
		defer zap.S().Info("writer is stopped")

		file, err := os.OpenFile(
			p.cfg.Batch.OutputPath,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0o644,
		)
		if err != nil {
			zap.S().Errorw("opening output file", "error", err)
			return
		}
		defer file.Close()

		encoder := json.NewEncoder(file)
		batch := make([]Result, 0, p.cfg.Batch.InsertBatchSize)

		flush := func() {
			if len(batch) == 0 {
				return
			}
			for _, result := range batch {
				if err := encoder.Encode(result); err != nil {
					zap.S().Errorw("encoding result", "error", err)
				}
			}
			if p.sink != nil {
				if err := p.sink.InsertBatch(ctx, batch); err != nil {
					zap.S().Errorw(
						"saving processed batch to the database",
						"error", err,
					)
				} else {
					zap.S().Infow(
						"saved processed batch to the database",
						"batch_len", len(batch),
					)
				}
			}
			batch = batch[:0]
		}

		for result := range results {
			batch = append(batch, result)
			if len(batch) >= p.cfg.Batch.InsertBatchSize {
				flush()
			}
		}
		flush()
	})
}
