// Package seed populates the database with demo users, posts, comments and likes.
// It is intended for development only.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sort"

	"blogsite/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed presets.yml
var builtinPresets []byte

// Options controls how much data Seed creates.
type Options struct {
	Users           int     `yaml:"users"`
	PostsPerUser    int     `yaml:"posts_per_user"`
	CommentsPerPost int     `yaml:"comments_per_post"`
	ApprovedRatio   float64 `yaml:"approved_ratio"`
	LikeRatio       float64 `yaml:"like_ratio"`
	SkipBcrypt      bool    `yaml:"skip_bcrypt"`
	// RandSeed makes a run reproducible. Zero picks a fixed default.
	RandSeed int64 `yaml:"rand_seed"`
}

// Validate rejects option sets that cannot produce a consistent dataset.
func (o Options) Validate() error {
	if o.Users <= 0 {
		return fmt.Errorf("users must be positive, got %d", o.Users)
	}
	if o.PostsPerUser < 0 || o.CommentsPerPost < 0 {
		return fmt.Errorf("posts and comments per item cannot be negative")
	}
	if o.ApprovedRatio < 0 || o.ApprovedRatio > 1 || o.LikeRatio < 0 || o.LikeRatio > 1 {
		return fmt.Errorf("ratios must be within [0, 1]")
	}
	return nil
}

// Result counts what a Seed run created.
type Result struct {
	Users    int
	Posts    int
	Comments int
	Likes    int
}

// LoadPresets decodes named presets from YAML.
func LoadPresets(r io.Reader) (map[string]Options, error) {
	presets := map[string]Options{}
	if err := yaml.NewDecoder(r).Decode(&presets); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	for name, opts := range presets {
		if err := opts.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return presets, nil
}

// BuiltinPresets returns the presets shipped with the binary.
func BuiltinPresets() (map[string]Options, error) {
	return LoadPresets(bytes.NewReader(builtinPresets))
}

// PresetNames lists preset names in sorted order.
func PresetNames(presets map[string]Options) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Seeder writes demo data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll deletes every row, children first.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{&models.Like{}, &models.Comment{}, &models.Post{}, &models.User{}}
	for _, m := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	log.Println("✓ Existing data cleared")
	return nil
}

// Seed creates users, then posts spread round-robin over the home categories,
// then comments and likes on those posts.
func (s *Seeder) Seed(opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	randSeed := opts.RandSeed
	if randSeed == 0 {
		randSeed = 42
	}
	gofakeit.Seed(randSeed)
	r := rand.New(rand.NewSource(randSeed))

	factory, err := NewFactory(s.db, opts.SkipBcrypt)
	if err != nil {
		return nil, err
	}

	res := &Result{}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return res, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	res.Users = len(users)
	log.Printf("✓ %d users created", res.Users)

	var posts []*models.Post
	for i, author := range users {
		for j := 0; j < opts.PostsPerUser; j++ {
			category := models.HomeCategories[(i*opts.PostsPerUser+j)%len(models.HomeCategories)]
			post, err := factory.CreatePost(author, category)
			if err != nil {
				return res, fmt.Errorf("create post: %w", err)
			}
			posts = append(posts, post)
		}
	}
	res.Posts = len(posts)
	log.Printf("✓ %d posts created", res.Posts)

	for _, post := range posts {
		for k := 0; k < opts.CommentsPerPost; k++ {
			commenter := users[r.Intn(len(users))]
			approved := r.Float64() < opts.ApprovedRatio
			if _, err := factory.CreateComment(commenter, post, approved); err != nil {
				return res, fmt.Errorf("create comment: %w", err)
			}
			res.Comments++
		}

		if r.Float64() < opts.LikeRatio {
			if err := factory.CreateLike(post); err != nil {
				return res, fmt.Errorf("create like: %w", err)
			}
			res.Likes++
		}
	}
	log.Printf("✓ %d comments and %d likes created", res.Comments, res.Likes)

	return res, nil
}

// ApplyPreset seeds with the named preset from presets.
func (s *Seeder) ApplyPreset(presets map[string]Options, name string) (*Result, error) {
	opts, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", name, PresetNames(presets))
	}
	return s.Seed(opts)
}
