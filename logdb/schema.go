// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for pool events
const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind INTEGER NOT NULL,
	pool BLOB(20) NOT NULL,
	account BLOB(20) NOT NULL,
	amount BLOB(32) NOT NULL,
	time INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS event_i_time ON event(time);
CREATE INDEX IF NOT EXISTS event_i_pool ON event(pool);
CREATE INDEX IF NOT EXISTS event_i_account ON event(account);
`
