package repository

import (
	"os"
	"strings"
	"sync"
	"testing"

	"studyshare/internal/domain/solution/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/schema"
)

// 表结构不走 AutoMigrate，模型列必须在迁移 DDL 里有对应定义
func TestSolutionColumnsExistInMigration(t *testing.T) {
	raw, err := os.ReadFile("../../../../migrations/000001_init.up.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	ddl := string(raw)

	start := strings.Index(ddl, "CREATE TABLE solutions")
	if start < 0 {
		t.Fatal("solutions table missing from migration")
	}
	table := ddl[start : start+strings.Index(ddl[start:], ";")]

	parsed, err := schema.Parse(&model.Solution{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse model: %v", err)
	}
	for _, field := range parsed.Fields {
		if field.DBName == "" {
			continue
		}
		assert.Contains(t, table, field.DBName, "column %s missing from solutions DDL", field.DBName)
	}
}
