package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Select reads rows from collection into dest, which must be a pointer to a
// slice. columns follows the data API select syntax; empty means "*". Rows
// keep the order the backend returns them in.
func (c *Client) Select(ctx context.Context, collection, columns string, dest any) error {
	collection = strings.Trim(collection, "/ ")
	if collection == "" || dest == nil {
		return ErrInvalidArgument
	}
	if columns == "" {
		columns = "*"
	}
	q := url.Values{"select": {columns}}
	return c.do(ctx, http.MethodGet, restPath+"/"+url.PathEscape(collection), q, c.bearer(), nil, dest)
}
