package seed

import (
	"strings"
	"testing"

	"blogsite/internal/models"
	"blogsite/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBuiltinPresets(t *testing.T) {
	presets, err := BuiltinPresets()
	require.NoError(t, err)

	assert.Equal(t, []string{"demo", "large", "small"}, PresetNames(presets))
	assert.Equal(t, 5, presets["small"].Users)
	assert.True(t, presets["large"].SkipBcrypt)
}

func TestLoadPresets_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"Zero users", "bad:\n  users: 0\n"},
		{"Ratio above one", "bad:\n  users: 1\n  like_ratio: 1.5\n"},
		{"Not a mapping", "- users: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPresets(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSeeder_Seed(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := NewSeeder(db)

	res, err := s.Seed(Options{
		Users:           3,
		PostsPerUser:    4,
		CommentsPerPost: 2,
		ApprovedRatio:   1,
		LikeRatio:       1,
		SkipBcrypt:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, &Result{Users: 3, Posts: 12, Comments: 24, Likes: 12}, res)

	for _, category := range models.HomeCategories {
		var count int64
		require.NoError(t, db.Model(&models.Post{}).Where("category = ?", category).Count(&count).Error)
		assert.Equal(t, int64(3), count, category)
	}

	var unliked int64
	require.NoError(t, db.Model(&models.Post{}).Where("like_count <> ?", 1).Count(&unliked).Error)
	assert.Zero(t, unliked)

	var pending int64
	require.NoError(t, db.Model(&models.Comment{}).Where("approved = ?", false).Count(&pending).Error)
	assert.Zero(t, pending)

	require.NoError(t, s.ClearAll())
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestSeeder_HashesDemoPassword(t *testing.T) {
	db := testutil.NewTestDB(t)

	_, err := NewSeeder(db).Seed(Options{Users: 1})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DemoPassword)))
}

func TestSeeder_ApplyPresetUnknown(t *testing.T) {
	db := testutil.NewTestDB(t)
	presets, err := BuiltinPresets()
	require.NoError(t, err)

	_, err = NewSeeder(db).ApplyPreset(presets, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "small")
}
