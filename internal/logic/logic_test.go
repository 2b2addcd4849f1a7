package logic

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/database"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newTestDB 每个测试独立的内存库，表结构与线上迁移一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *model.UserModel {
	t.Helper()
	user := &model.UserModel{
		Email:    email,
		Password: "hashed",
		NickName: "測試用戶",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createProject(t *testing.T, db *gorm.DB, userId int64, title string, startDate, endDate int64) *model.ProjectModel {
	t.Helper()
	project := &model.ProjectModel{
		UserId:      userId,
		Title:       title,
		TeamName:    "測試團隊",
		Email:       "team@example.com",
		Phone:       "0912345678",
		CategoryKey: 1,
		TargetMoney: 30000,
		StartDate:   startDate,
		EndDate:     endDate,
		Describe:    "簡介",
		Content:     "內容",
		CoverUrl:    "https://example.com/cover.png",
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func createReview(t *testing.T, db *gorm.DB, projectId int64, status int, content string) *model.ReviewLogModel {
	t.Helper()
	entry := &model.ReviewLogModel{
		ProjectId: projectId,
		Status:    status,
		Content:   content,
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

func createSponsor(t *testing.T, db *gorm.DB, userId, projectId, money int64) {
	t.Helper()
	require.NoError(t, db.Create(&model.SponsorModel{
		UserId:    userId,
		ProjectId: projectId,
		Money:     money,
		UserName:  "贊助者",
		Phone:     "0987654321",
	}).Error)
}

func daysFromNow(days int) int64 {
	return time.Now().Unix() + int64(days)*86400
}
