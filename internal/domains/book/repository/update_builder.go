package repository

import (
	"fmt"
	"strings"

	"bookstore-catalog/internal/domains/book/model"
)

// BuildUpdateQuery tạo UPDATE chỉ với các field có giá trị trong patch.
// ok = false khi không có cột nào cần update (chỉ đổi categories hoặc patch rỗng).
func BuildUpdateQuery(id int64, patch model.BookPatch) (Query, bool) {
	sets := []string{}
	args := []interface{}{}
	argIndex := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if v, ok := patch.Title.Get(); ok {
		add("title", v)
	}
	if v, ok := patch.Description.Get(); ok {
		add("description", v)
	}
	if v, ok := patch.Price.Get(); ok {
		add("price", v)
	}
	if v, ok := patch.AuthorID.Get(); ok {
		add("author_id", v)
	}
	if v, ok := patch.PublishedDate.Get(); ok {
		add("published_date", v)
	}

	if len(sets) == 0 {
		return Query{}, false
	}

	args = append(args, id)
	return Query{
		SQL:  fmt.Sprintf("UPDATE books SET %s WHERE id = $%d", strings.Join(sets, ", "), argIndex),
		Args: args,
	}, true
}
