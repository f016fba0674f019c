package postgresql

import (
	"fmt"
	"strings"
)

// queryBuilder implements QueryBuilder interface
type queryBuilder struct {
	selectCols  []string
	fromTable   string
	whereCond   []string
	whereArgs   []any
	groupByCols []string
	orderByCols []string
	limitVal    *int
	argCounter  int
}

// NewQueryBuilder creates a new query builder
func NewQueryBuilder() QueryBuilder {
	return &queryBuilder{}
}

func (qb *queryBuilder) Select(columns ...string) QueryBuilder {
	qb.selectCols = append(qb.selectCols, columns...)
	return qb
}

func (qb *queryBuilder) From(table string) QueryBuilder {
	qb.fromTable = table
	return qb
}

func (qb *queryBuilder) Where(condition string, args ...any) QueryBuilder {
	// Replace ? placeholders with $1, $2, etc. (PostgreSQL style)
	for range args {
		qb.argCounter++
		condition = strings.Replace(condition, "?", fmt.Sprintf("$%d", qb.argCounter), 1)
	}
	qb.whereCond = append(qb.whereCond, condition)
	qb.whereArgs = append(qb.whereArgs, args...)
	return qb
}

func (qb *queryBuilder) GroupBy(columns ...string) QueryBuilder {
	qb.groupByCols = append(qb.groupByCols, columns...)
	return qb
}

func (qb *queryBuilder) OrderBy(column string, desc ...bool) QueryBuilder {
	if len(desc) > 0 && desc[0] {
		column += " DESC"
	}
	qb.orderByCols = append(qb.orderByCols, column)
	return qb
}

func (qb *queryBuilder) Limit(limit int) QueryBuilder {
	qb.limitVal = &limit
	return qb
}

// Build assembles the final SQL string and its positional arguments.
func (qb *queryBuilder) Build() (string, []any) {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if len(qb.selectCols) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(qb.selectCols, ", "))
	}

	sb.WriteString(" FROM ")
	sb.WriteString(qb.fromTable)

	if len(qb.whereCond) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(qb.whereCond, " AND "))
	}

	if len(qb.groupByCols) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(qb.groupByCols, ", "))
	}

	if len(qb.orderByCols) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(qb.orderByCols, ", "))
	}

	if qb.limitVal != nil {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", *qb.limitVal))
	}

	return sb.String(), qb.whereArgs
}
