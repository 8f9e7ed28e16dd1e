package repository

import (
	"fmt"
	"strings"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/shared/utils"
)

// Query là SQL đã parameterize cùng args theo đúng thứ tự $1..$n
type Query struct {
	SQL  string
	Args []interface{}
}

const bookColumns = `b.id, b.title, b.description, b.price, b.author_id, a.name, b.published_date`

const bookFrom = `FROM books b JOIN authors a ON a.id = b.author_id`

// fullTextPredicate match title + description theo plainto_tsquery
// (token không theo thứ tự, không phải substring)
const fullTextPredicate = `to_tsvector('english', b.title || ' ' || b.description) @@ plainto_tsquery('english', $%d)`

// BuildListQuery - Construct SELECT từ filter thưa
// Mọi giá trị người dùng (kể cả limit/offset) đều đi qua bound parameter
func BuildListQuery(filter model.BookFilter) Query {
	filter = filter.WithDefaults()

	joins := []string{}
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.AuthorID != nil {
		conditions = append(conditions, fmt.Sprintf("b.author_id = $%d", argIndex))
		args = append(args, *filter.AuthorID)
		argIndex++
	}

	// INNER JOIN: book không có category nào sẽ bị loại khi lọc theo category
	if filter.CategoryID != nil {
		joins = append(joins, "JOIN book_categories bc ON bc.book_id = b.id")
		conditions = append(conditions, fmt.Sprintf("bc.category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, fmt.Sprintf(fullTextPredicate, argIndex))
		args = append(args, search)
		argIndex++
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + bookColumns + " " + bookFrom)
	for _, j := range joins {
		sb.WriteString(" " + j)
	}
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + utils.JoinWithAnd(conditions))
	}
	fmt.Fprintf(&sb, " ORDER BY b.title ASC, b.id ASC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	return Query{SQL: sb.String(), Args: args}
}

// BuildGetQuery selects a single book row with its author name.
func BuildGetQuery(id int64) Query {
	return Query{
		SQL:  "SELECT " + bookColumns + " " + bookFrom + " WHERE b.id = $1",
		Args: []interface{}{id},
	}
}
