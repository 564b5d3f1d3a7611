// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb indexes reward pool events in sqlite.
package logdb

import (
	"context"
	"database/sql"
	"math"

	"github.com/holiman/uint256"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/rewardpool"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/thor"
)

var logger = log.WithContext("pkg", "logdb")

type LogDB struct {
	path      string
	db        *sql.DB
	stmtCache *stmtCache
}

var _ rewardpool.EventSink = (*LogDB)(nil)

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, errors.Wrap(err, "open log db")
	}
	defer func() {
		if logDB == nil {
			_ = db.Close()
		}
	}()
	if path == ":memory:" {
		// every connection would get its own in-memory db
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	return &LogDB{
		path:      path,
		db:        db,
		stmtCache: newStmtCache(db),
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// Write stores events in one transaction, preserving their order.
// Times are stored as sqlite integers, so events timed past math.MaxInt64 are rejected
// and nothing of the batch is written.
func (db *LogDB) Write(events []*rewardpool.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	stmt, err := tx.Prepare("INSERT INTO event(kind, pool, account, amount, time) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, ev := range events {
		if ev.Time > math.MaxInt64 {
			_ = tx.Rollback()
			return errors.Errorf("event time %d out of range", ev.Time)
		}
		amount := new(uint256.Int)
		if ev.Amount != nil {
			amount = ev.Amount
		}
		b32 := amount.Bytes32()
		if _, err := stmt.Exec(uint8(ev.Kind), ev.Pool.Bytes(), ev.Account.Bytes(), b32[:], int64(ev.Time)); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "insert event")
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	metricEventsWritten().Add(int64(len(events)))
	logger.Debug("events written", "count", len(events))
	return nil
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT seq, kind, pool, account, amount, time FROM event ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	if filter.Range != nil && filter.Range.From > math.MaxInt64 {
		// no stored time is that late
		return nil, nil
	}

	var args []any
	stmt := "SELECT seq, kind, pool, account, amount, time FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, int64(filter.Range.From))
		stmt += " AND time >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, clampInt64(filter.Range.To))
			stmt += " AND time <= ?"
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Kind != nil {
			args = append(args, uint8(*criteria.Kind))
			stmt += " AND kind = ?"
		}
		if criteria.Pool != nil {
			args = append(args, criteria.Pool.Bytes())
			stmt += " AND pool = ?"
		}
		if criteria.Account != nil {
			args = append(args, criteria.Account.Bytes())
			stmt += " AND account = ?"
		}
		stmt += " )"
	}
	if len(filter.CriteriaSet) > 0 {
		stmt += ")"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, clampInt64(filter.Options.Offset), clampInt64(filter.Options.Limit))
	}
	return db.queryEvents(ctx, stmt, args...)
}

// clampInt64 maps v onto the signed range sqlite binds integers in.
func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

func (db *LogDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, errors.Wrap(err, "prepare query")
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     uint64
			kind    uint8
			pool    []byte
			account []byte
			amount  []byte
			time    uint64
		)
		if err := rows.Scan(&seq, &kind, &pool, &account, &amount, &time); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}
		events = append(events, &Event{
			Seq:     seq,
			Kind:    rewardpool.EventKind(kind),
			Pool:    thor.BytesToAddress(pool),
			Account: thor.BytesToAddress(account),
			Amount:  new(uint256.Int).SetBytes(amount),
			Time:    time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate events")
	}
	return events, nil
}
