package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendPassEvent(ctx context.Context, data PassEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO pass_events
		(sequence, timestamp, session_id, pass, sampling, total, score, wrong, duration_secs, surface)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.timestamp(), data.SessionID, data.Pass, data.Sampling,
		data.Total, data.Score, data.Wrong, data.DurationSecs, data.Surface,
	)
	if err != nil {
		return fmt.Errorf("save pass event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPassEvents(ctx context.Context, opts QueryOpts) ([]PassEventRecord, error) {
	where, args := opts.filter("", nil)
	tail, args := opts.tail(args)

	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, timestamp, session_id, pass,
		sampling, total, score, wrong, duration_secs, surface
		FROM pass_events`+where+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query pass events: %w", err)
	}
	defer rows.Close()

	var records []PassEventRecord
	for rows.Next() {
		var rec PassEventRecord
		var ts int64
		err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.Pass,
			&rec.Sampling, &rec.Total, &rec.Score, &rec.Wrong, &rec.DurationSecs, &rec.Surface)
		if err != nil {
			return nil, fmt.Errorf("scan pass event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}
