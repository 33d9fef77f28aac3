package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"hotelledger/infras/otel"
	"hotelledger/infras/postgres"
	"hotelledger/shared/constant"
	"hotelledger/shared/dto"
	"hotelledger/shared/logger"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter   = errors.New("required filter")
	errRequiredConflict = errors.New("required conflict columns")
)

// joiner is implemented by models that read columns from other tables.
type joiner interface {
	GetJoinQuery() string
}

type column struct {
	name  string
	table string
	alias string
}

func (c column) selector() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return c.table + "." + c.name
	}
}

// Repository is the generic sqlx-backed table gateway the domain repositories embed.
// Reads go to the read node, writes to the write node.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	var join string
	if j, ok := any(zero).(joiner); ok {
		join = j.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// read prepares query on the read node and hands the statement to scan.
func (repo *Repository[T]) read(ctx context.Context, scope otel.Scope, action, query string, scan func(*sqlx.NamedStmt) error) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err := scan(stmt); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) write(ctx context.Context, scope otel.Scope, action, query string, arg any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, len(repo.InsertColumns))
	for i, col := range repo.InsertColumns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	return repo.write(ctx, scope, "insert data", repo.insertQuery(), model)
}

// Upsert inserts model, or overwrites updateColumns of the row that conflicts on conflictColumns.
// With no updateColumns every insert column outside the conflict target and the creation
// audit pair is overwritten.
func (repo *Repository[T]) Upsert(ctx context.Context, model T, conflictColumns []string, updateColumns ...string) error {
	ctx, scope := repo.scope(ctx, "Upsert")
	defer scope.End()

	if len(conflictColumns) == 0 {
		return errRequiredConflict
	}

	if len(updateColumns) == 0 {
		updateColumns = slices.DeleteFunc(slices.Clone(repo.InsertColumns), func(col string) bool {
			return slices.Contains(conflictColumns, col) || col == constant.FieldCreatedAt || col == constant.FieldCreatedBy
		})
	}

	assignments := make([]string, len(updateColumns))
	for i, col := range updateColumns {
		assignments[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
	}

	query := fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s", repo.insertQuery(), strings.Join(conflictColumns, ", "), strings.Join(assignments, ", "))

	return repo.write(ctx, scope, "upsert data", query, model)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	err := repo.read(ctx, scope, "check exist data", fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where), func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	})

	return exist, err
}

// Get returns the first matching row, or the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectList(columns), repo.table, repo.join, where)

	var model T

	err := repo.read(ctx, scope, "get data", query, func(stmt *sqlx.NamedStmt) error {
		if err := stmt.GetContext(ctx, &model, args); !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return nil
	})

	return model, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var tail strings.Builder

	if params.SortBy != "" && params.SortDir != "" {
		fmt.Fprintf(&tail, " ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		tail.WriteString(" LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = params.Offset()
			tail.WriteString(" OFFSET :offset")
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s%s", repo.selectList(columns), repo.table, repo.join, where, tail.String())

	models := []T{}

	err := repo.read(ctx, scope, "get all data", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})

	return models, err
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)

	var count int

	err := repo.read(ctx, scope, "count data", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})

	return count, err
}

// Select runs a hand-written read query with named args and scans every row into dest.
func (repo *Repository[T]) Select(ctx context.Context, dest any, query string, args map[string]any) error {
	ctx, scope := repo.scope(ctx, "Select")
	defer scope.End()

	if args == nil {
		args = map[string]any{}
	}

	return repo.read(ctx, scope, "select data", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, dest, args)
	})
}

// Update sets the columns of mod on every matching row. An empty filter is refused.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	maps.Copy(args, mod)

	return repo.write(ctx, scope, "update data", fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where), args)
}

// Delete removes every matching row. An empty filter is refused.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.write(ctx, scope, "delete data", fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args)
}

// Table returns the table the repository is bound to.
func (repo *Repository[T]) Table() string {
	return repo.table
}

func (repo *Repository[T]) selectList(only []string) string {
	selected := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		selected = append(selected, col.selector())
	}

	return strings.Join(selected, ", ")
}

func (repo *Repository[T]) BuildWhereClause(ctx context.Context, filter dto.FilterGroup) (string, map[string]any) {
	_, scope := repo.scope(ctx, "BuildWhereClause")
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where == "" {
		return where, map[string]any{}
	}

	return " WHERE " + where + " ", args
}

// getColumns walks db tags, descending into embedded structs. Fields tagged with another
// table are selectable but never inserted.
func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if name := field.Tag.Get("column"); name != "" {
			columns = append(columns, column{name: name, table: owner, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: owner})
		}
	}

	return columns, insertColumns
}
