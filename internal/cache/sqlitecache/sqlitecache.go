// Package sqlitecache is an alternate backend for the signatures/
// fingerprint table (spec §4.9): fingerprints are kept in a local sqlite
// database so the duplicate engine's coarse filter can push its
// parameter-count and boilerplate-class bounds down into an indexed query
// rather than comparing every pair in Go. Selected as an opt-in backend
// for large repos; without it, no fingerprints are persisted and
// clustering runs over the in-memory signatures only.
package sqlitecache

import (
	"database/sql"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	semerrors "github.com/standardbeagle/semfora/internal/errors"
	"github.com/standardbeagle/semfora/internal/types"
)

// tokenSep separates joined name/call tokens stored in a single TEXT column.
const tokenSep = "\x1f"

const schema = `
CREATE TABLE IF NOT EXISTS signatures (
	symbol_id        INTEGER PRIMARY KEY,
	name_tokens      TEXT NOT NULL,
	call_set_hash    INTEGER NOT NULL,
	control_flow_hash INTEGER NOT NULL,
	state_mut_hash   INTEGER NOT NULL,
	business_calls   TEXT NOT NULL,
	param_count      INTEGER NOT NULL,
	boilerplate      TEXT NOT NULL DEFAULT '',
	line_count       INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_signatures_param_count ON signatures(param_count);
CREATE INDEX IF NOT EXISTS idx_signatures_boilerplate ON signatures(boilerplate);
`

// Row is one fingerprint plus the line count its symbol's canonical-member
// comparison needs (spec §4.9: longest member wins), which
// types.FunctionSignature itself doesn't carry.
type Row struct {
	types.FunctionSignature
	LineCount int
}

// DB wraps the signatures.db sqlite file for one repo's cache directory.
type DB struct {
	conn *sql.DB
}

// Open creates or attaches to <cacheDir>/signatures/signatures.db.
func Open(cacheDir string) (*DB, error) {
	path := filepath.Join(cacheDir, "signatures", "signatures.db")
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, semerrors.NewCacheError(path, "sqlite_open", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, semerrors.NewCacheError(path, "sqlite_schema", err)
	}
	return &DB{conn: conn}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// Upsert stores or replaces one function's signature. lineCount is the
// symbol's source line span, persisted only so CoarseCandidates can serve
// canonical-member comparisons without a second lookup.
func (d *DB) Upsert(sig *types.FunctionSignature, lineCount int) error {
	_, err := d.conn.Exec(
		`INSERT INTO signatures (symbol_id, name_tokens, call_set_hash, control_flow_hash, state_mut_hash, business_calls, param_count, boilerplate, line_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(symbol_id) DO UPDATE SET
			name_tokens=excluded.name_tokens,
			call_set_hash=excluded.call_set_hash,
			control_flow_hash=excluded.control_flow_hash,
			state_mut_hash=excluded.state_mut_hash,
			business_calls=excluded.business_calls,
			param_count=excluded.param_count,
			boilerplate=excluded.boilerplate,
			line_count=excluded.line_count`,
		int64(sig.SymbolID), joinTokens(sig.NameTokens), int64(sig.CallSetHash), int64(sig.ControlFlowHash),
		int64(sig.StateMutHash), joinTokens(sig.BusinessCalls), sig.ParamCount, sig.Boilerplate, lineCount,
	)
	if err != nil {
		return semerrors.NewCacheError("signatures.db", "upsert", err)
	}
	return nil
}

// CoarseCandidates returns signatures whose param_count falls within
// paramCount±maxParamDelta and whose boilerplate class exactly matches
// boilerplate (cross-category boilerplate is excluded from matching, but
// same-category boilerplate signatures are legitimate candidates, spec
// §4.9), using the param_count/boilerplate indexes rather than a full
// Go-side scan.
func (d *DB) CoarseCandidates(paramCount, maxParamDelta int, boilerplate string) ([]Row, error) {
	rows, err := d.conn.Query(
		`SELECT symbol_id, name_tokens, call_set_hash, control_flow_hash, state_mut_hash, business_calls, param_count, boilerplate, line_count
		 FROM signatures WHERE param_count BETWEEN ? AND ? AND boilerplate = ?`,
		paramCount-maxParamDelta, paramCount+maxParamDelta, boilerplate,
	)
	if err != nil {
		return nil, semerrors.NewCacheError("signatures.db", "query", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			symbolID                                  int64
			nameTokens, businessCalls, boilerplateVal string
			callSetHash, controlFlowHash, stateMutHash int64
			paramCountVal, lineCount                  int
		)
		if err := rows.Scan(&symbolID, &nameTokens, &callSetHash, &controlFlowHash, &stateMutHash, &businessCalls, &paramCountVal, &boilerplateVal, &lineCount); err != nil {
			return nil, semerrors.NewCacheError("signatures.db", "scan", err)
		}
		out = append(out, Row{
			FunctionSignature: types.FunctionSignature{
				SymbolID:        uint64(symbolID),
				NameTokens:      splitTokens(nameTokens),
				CallSetHash:     uint64(callSetHash),
				ControlFlowHash: uint64(controlFlowHash),
				StateMutHash:    uint64(stateMutHash),
				BusinessCalls:   splitTokens(businessCalls),
				ParamCount:      paramCountVal,
				Boilerplate:     boilerplateVal,
			},
			LineCount: lineCount,
		})
	}
	return out, rows.Err()
}

func joinTokens(tokens []string) string {
	return strings.Join(tokens, tokenSep)
}

func splitTokens(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, tokenSep)
}
