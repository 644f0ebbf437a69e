package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events
		(sequence, timestamp, session_id, pass, chapter, question_text,
		 correct_answer, learner_answer, correct, time_ms, surface)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.timestamp(), data.SessionID, data.Pass, data.Chapter, data.QuestionText,
		data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.TimeMs, data.Surface,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, timestamp, session_id, pass,
		chapter, question_text, correct_answer, learner_answer, correct, time_ms, surface
		FROM answer_events WHERE session_id = ? ORDER BY sequence`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var records []AnswerEventRecord
	for rows.Next() {
		var rec AnswerEventRecord
		var ts int64
		err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.Pass,
			&rec.Chapter, &rec.QuestionText, &rec.CorrectAnswer, &rec.LearnerAnswer,
			&rec.Correct, &rec.TimeMs, &rec.Surface)
		if err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) ChapterAccuracy(ctx context.Context) ([]ChapterAccuracy, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT chapter, COUNT(*), COALESCE(SUM(correct), 0)
		FROM answer_events GROUP BY chapter ORDER BY chapter`)
	if err != nil {
		return nil, fmt.Errorf("query chapter accuracy: %w", err)
	}
	defer rows.Close()

	var stats []ChapterAccuracy
	for rows.Next() {
		var st ChapterAccuracy
		if err := rows.Scan(&st.Chapter, &st.Answers, &st.Correct); err != nil {
			return nil, fmt.Errorf("scan chapter accuracy: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
