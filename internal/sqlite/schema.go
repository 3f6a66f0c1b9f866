// Package sqlite recognizes SQLite database files and dumps their schema.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	headerPrefix = "SQLite format 3"
	headerLength = 16
	driverName   = "sqlite"

	tablesQuery  = "SELECT sql FROM sqlite_master WHERE type='table' ORDER BY name"
	viewsQuery   = "SELECT sql FROM sqlite_master WHERE type='view' ORDER BY name"
	indexesQuery = "SELECT sql FROM sqlite_master WHERE type='index' AND name NOT LIKE 'sqlite_%' ORDER BY name"

	tablesBanner  = "-- Tables"
	viewsBanner   = "\n-- Views"
	indexesBanner = "\n-- Indexes"
)

// IsDatabaseFile reports whether the file at path starts with the SQLite
// format header. Unreadable files are not databases.
func IsDatabaseFile(path string) bool {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return false
	}
	defer fileHandle.Close()

	headerBuffer := make([]byte, headerLength)
	bytesRead, readError := fileHandle.Read(headerBuffer)
	if readError != nil {
		return false
	}
	return strings.HasPrefix(string(headerBuffer[:bytesRead]), headerPrefix)
}

// ExtractSchema dumps the table, view, and index definitions of the database
// at path as SQL text grouped under section banners.
func ExtractSchema(path string) (string, error) {
	databaseHandle, openError := sql.Open(driverName, path)
	if openError != nil {
		return "", fmt.Errorf("open database %s: %w", path, openError)
	}
	defer databaseHandle.Close()

	var schemaParts []string

	tableStatements, tablesError := queryStatements(databaseHandle, tablesQuery)
	if tablesError != nil {
		return "", fmt.Errorf("read table schema from %s: %w", path, tablesError)
	}
	if len(tableStatements) > 0 {
		schemaParts = append(schemaParts, tablesBanner)
		schemaParts = append(schemaParts, tableStatements...)
	}

	viewStatements, viewsError := queryStatements(databaseHandle, viewsQuery)
	if viewsError != nil {
		return "", fmt.Errorf("read view schema from %s: %w", path, viewsError)
	}
	if len(viewStatements) > 0 {
		schemaParts = append(schemaParts, viewsBanner)
		schemaParts = append(schemaParts, viewStatements...)
	}

	indexStatements, indexesError := queryStatements(databaseHandle, indexesQuery)
	if indexesError != nil {
		return "", fmt.Errorf("read index schema from %s: %w", path, indexesError)
	}
	if len(indexStatements) > 0 {
		schemaParts = append(schemaParts, indexesBanner)
		schemaParts = append(schemaParts, indexStatements...)
	}

	return strings.Join(schemaParts, "\n"), nil
}

// queryStatements collects non-empty SQL definitions returned by a
// sqlite_master query, each suffixed with a semicolon.
func queryStatements(databaseHandle *sql.DB, query string) ([]string, error) {
	rows, queryError := databaseHandle.Query(query)
	if queryError != nil {
		return nil, queryError
	}
	defer rows.Close()

	var statements []string
	for rows.Next() {
		var statement sql.NullString
		if scanError := rows.Scan(&statement); scanError != nil {
			return nil, scanError
		}
		if !statement.Valid || statement.String == "" {
			continue
		}
		statements = append(statements, statement.String+";")
	}
	return statements, rows.Err()
}
