package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/datazip-inc/tap-mongodb/constants"
	"github.com/datazip-inc/tap-mongodb/protocol"
	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/datazip-inc/tap-mongodb/utils/logger"
	"github.com/datazip-inc/tap-mongodb/utils/typeutils"
	"go.mongodb.org/mongo-driver/bson"
)

// cursor is the subset of *mongo.Cursor the sync loop depends on
type cursor interface {
	Next(ctx context.Context) bool
	Decode(val any) error
	Err() error
	Close(ctx context.Context) error
}

// openCursorFn opens the source cursor for the run's filter. Indirection
// keeps the loop testable against a collaborator double.
type openCursorFn func(ctx context.Context, filter bson.M) (cursor, error)

// Incremental syncs one stream's records at or beyond the bookmarked cursor
// position, checkpointing state every config.CheckpointRecords rows
func (m *Mongo) Incremental(ctx context.Context, stream *types.ConfiguredStream, state *types.State, sink protocol.Sink, metrics *protocol.Metrics) error {
	return m.runIncremental(ctx, stream, state, sink, metrics, func(ctx context.Context, filter bson.M) (cursor, error) {
		return m.collection(stream).Find(ctx, filter, findOptions(stream, m.config.BatchSize))
	})
}

func (m *Mongo) runIncremental(ctx context.Context, stream *types.ConfiguredStream, state *types.State, sink protocol.Sink, metrics *protocol.Metrics, openCursor openCursorFn) error {
	streamID := stream.ID()
	cursorField := stream.Cursor()
	if cursorField == "" {
		return fmt.Errorf("no cursor field configured for stream[%s]", streamID)
	}

	logger.Infof("Starting incremental sync for %s", streamID)

	// pick a new dataset version unless the last run was interrupted
	firstRun := state.IsFirstRun(streamID)
	version := state.ResolveVersion(streamID)

	// on the initial replication activate the version upfront, so records
	// show up downstream right away instead of after the whole pass
	if firstRun {
		if err := sink.Write(types.NewActivateVersionMessage(stream.DestinationName(), version)); err != nil {
			return err
		}
	}

	filter, err := buildFindFilter(state, streamID, cursorField)
	if err != nil {
		return err
	}

	if err := sink.Write(types.NewStateMessage(state)); err != nil {
		return err
	}

	logger.Infof("Querying %s with filter %v (cursor=%s, version=%d)", streamID, filter, cursorField, version)

	findCursor, err := openCursor(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to open cursor on %s: %s", streamID, err)
	}

	if err := m.streamRecords(ctx, findCursor, stream, state, sink, metrics, version); err != nil {
		return err
	}

	// the generation is complete now; activate it unconditionally
	return sink.Write(types.NewActivateVersionMessage(stream.DestinationName(), version))
}

// streamRecords drains the cursor, closing it on every exit path. Per row:
// merge schema, emit record, advance bookmark, periodically checkpoint.
func (m *Mongo) streamRecords(ctx context.Context, cur cursor, stream *types.ConfiguredStream, state *types.State, sink protocol.Sink, metrics *protocol.Metrics, version int64) error {
	defer cur.Close(ctx)

	streamID := stream.ID()
	cursorField := stream.Cursor()
	destination := stream.DestinationName()

	schema := types.NewSchema()
	timeExtracted := time.Now().UTC() // captured once per run
	rowsSaved := int64(0)
	defer func() {
		metrics.AddRecords(streamID, rowsSaved)
	}()

	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return fmt.Errorf("failed to decode document: %s", err)
		}

		rawCursorValue := doc[cursorField]
		record := normalizeDocument(doc)

		if typeutils.MergeRecordSchema(schema, record) {
			if err := sink.Write(types.NewSchemaMessage(destination, schema, constants.MongoPrimaryID)); err != nil {
				return err
			}
			metrics.AddSchemaChange(streamID)
		}

		if err := sink.Write(types.NewRecordMessage(destination, record, version, timeExtracted)); err != nil {
			return err
		}

		if err := advanceBookmark(state, streamID, rawCursorValue); err != nil {
			return err
		}

		rowsSaved++
		if rowsSaved%int64(m.config.CheckpointRecords) == 0 {
			if err := sink.Write(types.NewStateMessage(state)); err != nil {
				return err
			}
			state.LogState()
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("cursor failed on %s: %s", streamID, err)
	}

	logger.Infof("Synced %d records for %s", rowsSaved, streamID)
	return nil
}

// advanceBookmark serializes the row's cursor value into the stream bookmark.
// Rows without a cursor value leave the previous bookmark untouched.
func advanceBookmark(state *types.State, streamID string, value any) error {
	if value == nil {
		return nil
	}

	encoded, typeName, err := typeutils.EncodeCursor(value)
	if err != nil {
		return fmt.Errorf("stream[%s]: %s", streamID, err)
	}

	state.SetCursor(streamID, encoded, typeName)
	return nil
}
