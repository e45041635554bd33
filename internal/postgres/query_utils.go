package postgres

import (
	"fmt"
	"strings"
)

// tableColumn qualifies column with its table so joined queries stay
// unambiguous.
func tableColumn(table, column string) string {
	return fmt.Sprintf("%s.%s", table, column)
}

func tableColumns(table string, columns []string) []string {
	cs := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		cs = append(cs, tableColumn(table, c))
	}
	return cs
}

// joinOn renders the argument to a squirrel Join for an equality join.
func joinOn(table, left, right string) string {
	return fmt.Sprintf("%s ON %s = %s", table, left, right)
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}
