package shared

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"hotelledger/shared/cache"
	"hotelledger/shared/constant"
	"hotelledger/shared/dto"
	"hotelledger/shared/logger"
	"hotelledger/shared/timezone"
)

// ParseOptionalBool reads a tri-state query flag: nil when absent or unparsable.
func ParseOptionalBool(value string) *bool {
	if value == constant.Empty {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}

	return &parsed
}

// TotalPages is never below one so an empty list still reports a page.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// ChangedColumns maps the non-zero db-tagged fields of a patch struct to their columns and
// stamps the modification audit pair. Pointer fields are dereferenced, so a pointer to a
// zero value still counts as a change.
func ChangedColumns(patch any, actor string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(patch))
	changed := map[string]any{}

	if val.Kind() == reflect.Struct {
		typ := val.Type()

		for i := range val.NumField() {
			col := typ.Field(i).Tag.Get("db")
			field := val.Field(i)

			if col == constant.Empty || col == "-" || field.IsZero() {
				continue
			}

			changed[col] = reflect.Indirect(field).Interface()
		}
	}

	changed[constant.FieldModifiedAt] = timezone.Now()
	changed[constant.FieldModifiedBy] = actor

	return changed
}

// FilterByID matches a single row by its key column.
func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: fieldID, Value: id, Operator: dto.FilterOperatorEq, Table: table},
		},
	}
}

// BuildCacheKey joins prefix and parts with ':'.
func BuildCacheKey(prefix string, parts ...any) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, prefix)

	for _, part := range parts {
		segments = append(segments, fmt.Sprint(part))
	}

	return strings.Join(segments, ":")
}

// QueryCacheKey derives a stable key from paging params and a filter group. Args are
// visited in key order so equal filters always hash the same way.
func QueryCacheKey(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	h := sha1.New() //nolint:gosec
	fmt.Fprintf(h, "%d|%d|%s|%s|%s", params.Page, params.Limit, params.SortBy, params.SortDir, where)

	for _, key := range slices.Sorted(maps.Keys(args)) {
		fmt.Fprintf(h, "|%s=%v", key, args[key])
	}

	return BuildCacheKey(prefix, hex.EncodeToString(h.Sum(nil)))
}

// InvalidateCaches drops every key under prefix. Errors are logged, not returned.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
