package handlers

import (
  "fmt"
  "strconv"
  "time"
  "github.com/gin-gonic/gin"
  "gorm.io/gorm"
  "github.com/appsembler/figures-backend/internal/utils"
)

// Filter op kinds. Listing endpoints declare their filterable fields as a
// spec of (query param, column, op) rather than hand-writing query
// branches per endpoint.
const (
  FilterExact     = "exact"
  FilterIContains = "icontains"
  FilterBool      = "bool"
  FilterIntMin    = "int_min"
  FilterIntMax    = "int_max"
  FilterDateFrom  = "date_from"
  FilterDateTo    = "date_to"
  FilterDateExact = "date_exact"
)

type FilterField struct {
  Param  string
  Column string
  Op     string
}

// FilterScopes turns the request's query params into gorm scopes according
// to the field spec. Unknown params are ignored; a malformed value for a
// declared param is an error so callers can 400 instead of silently
// returning the unfiltered set.
func FilterScopes(c *gin.Context, fields []FilterField) ([]func(*gorm.DB) *gorm.DB, error) {
  var scopes []func(*gorm.DB) *gorm.DB
  for _, field := range fields {
    raw, ok := c.GetQuery(field.Param)
    if !ok || raw == "" {
      continue
    }
    scope, err := buildScope(field, raw)
    if err != nil {
      return nil, err
    }
    scopes = append(scopes, scope)
  }
  return scopes, nil
}

func buildScope(field FilterField, raw string) (func(*gorm.DB) *gorm.DB, error) {
  column := field.Column
  switch field.Op {
  case FilterExact:
    return func(db *gorm.DB) *gorm.DB {
      return db.Where(column+" = ?", raw)
    }, nil
  case FilterIContains:
    return func(db *gorm.DB) *gorm.DB {
      return db.Where(column+" ILIKE ?", "%"+raw+"%")
    }, nil
  case FilterBool:
    val, err := strconv.ParseBool(raw)
    if err != nil {
      return nil, fmt.Errorf("%s must be a boolean: %q", field.Param, raw)
    }
    return func(db *gorm.DB) *gorm.DB {
      return db.Where(column+" = ?", val)
    }, nil
  case FilterIntMin:
    val, err := strconv.Atoi(raw)
    if err != nil {
      return nil, fmt.Errorf("%s must be an integer: %q", field.Param, raw)
    }
    return func(db *gorm.DB) *gorm.DB {
      return db.Where(column+" >= ?", val)
    }, nil
  case FilterIntMax:
    val, err := strconv.Atoi(raw)
    if err != nil {
      return nil, fmt.Errorf("%s must be an integer: %q", field.Param, raw)
    }
    return func(db *gorm.DB) *gorm.DB {
      return db.Where(column+" <= ?", val)
    }, nil
  case FilterDateFrom:
    day, err := parseDay(field.Param, raw)
    if err != nil {
      return nil, err
    }
    return func(db *gorm.DB) *gorm.DB {
      return db.Where(column+" >= ?", day)
    }, nil
  case FilterDateTo:
    day, err := parseDay(field.Param, raw)
    if err != nil {
      return nil, err
    }
    return func(db *gorm.DB) *gorm.DB {
      return db.Where(column+" < ?", utils.NextDay(day))
    }, nil
  case FilterDateExact:
    day, err := parseDay(field.Param, raw)
    if err != nil {
      return nil, err
    }
    return func(db *gorm.DB) *gorm.DB {
      return db.Where(column+" = ?", day)
    }, nil
  default:
    return nil, fmt.Errorf("unknown filter op %q for %s", field.Op, field.Param)
  }
}

func parseDay(param, raw string) (time.Time, error) {
  day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
  if err != nil {
    return time.Time{}, fmt.Errorf("%s must be a YYYY-MM-DD date: %q", param, raw)
  }
  return day, nil
}
