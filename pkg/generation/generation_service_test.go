package generation

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/entities"
	"Storybrush-Backend/pkg/content"
	"Storybrush-Backend/pkg/credit"
	"Storybrush-Backend/pkg/filedb"
	"Storybrush-Backend/pkg/sheets"
	"Storybrush-Backend/pkg/user"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenai struct {
	text     string
	image    string
	textErr  error
	imageErr error
	prompts  []string
}

func (f *fakeGenai) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.text, nil
}

func (f *fakeGenai) GenerateImage(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.imageErr != nil {
		return "", f.imageErr
	}
	return f.image, nil
}

type nullSheetsClient struct{}

func (nullSheetsClient) GetUsers(ctx context.Context) ([]*sheets.RemoteUser, error) {
	return []*sheets.RemoteUser{}, nil
}
func (nullSheetsClient) CreateUser(ctx context.Context, u *sheets.RemoteUser) error { return nil }
func (nullSheetsClient) DeleteUser(ctx context.Context, email string) error         { return nil }
func (nullSheetsClient) DeductCredits(ctx context.Context, email string, amount int) (int, error) {
	return 0, domain.ErrUserNotFound
}
func (nullSheetsClient) AddCredits(ctx context.Context, email string, amount int) (int, error) {
	return 0, domain.ErrUserNotFound
}

type nullS3 struct{}

func (nullS3) UploadObject(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	return "https://bucket.s3.region.amazonaws.com/" + key, nil
}
func (nullS3) DeleteObject(ctx context.Context, key string) error { return nil }

type generationFixture struct {
	svc      GenerationService
	userRepo user.UserRepository
	genai    *fakeGenai
	user     *entities.User
}

func newGenerationFixture(t *testing.T, credits int) *generationFixture {
	t.Helper()
	store, err := filedb.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	userRepo := user.NewUserRepository(store)
	now := time.Now()
	u := &entities.User{
		ID:      uuid.New(),
		Email:   "parent@example.com",
		Credits: credits,
		Status:  domain.UserStatusActive,
		Version: 1,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	require.NoError(t, userRepo.CreateUser(context.Background(), u))

	genaiClient := &fakeGenai{
		text:  "TITLE: Luna and the Moon Garden\nOnce upon a time...",
		image: "data:image/png;base64,aGVsbG8=",
	}
	creditService := credit.NewCreditService(userRepo, nullSheetsClient{})
	contentService := content.NewContentService(content.NewContentRepository(store), nullS3{})

	return &generationFixture{
		svc:      NewGenerationService(userRepo, creditService, contentService, genaiClient),
		userRepo: userRepo,
		genai:    genaiClient,
		user:     u,
	}
}

func (f *generationFixture) balance(t *testing.T) int {
	t.Helper()
	u, err := f.userRepo.GetUserByID(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	return u.Credits
}

func TestGenerateStory(t *testing.T) {
	f := newGenerationFixture(t, 50)

	resp, err := f.svc.GenerateStory(context.Background(), domain.GenerateStoryRequest{
		Hero:     "Luna",
		Theme:    "the moon garden",
		AgeRange: "6-8",
	}, f.user.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Luna and the Moon Garden", resp.Title)
	assert.Equal(t, "Once upon a time...", resp.Story)
	assert.Equal(t, 50-domain.COST_STORY_GENERATION, resp.Balance)
	assert.NotEmpty(t, resp.ContentID)
	assert.Equal(t, 50-domain.COST_STORY_GENERATION, f.balance(t))

	require.Len(t, f.genai.prompts, 1)
	assert.Contains(t, f.genai.prompts[0], "Luna")
	assert.Contains(t, f.genai.prompts[0], "6-8")
}

func TestGenerateStoryWithoutTitleLineFallsBack(t *testing.T) {
	f := newGenerationFixture(t, 50)
	f.genai.text = "Once upon a time there was a brave fox."

	resp, err := f.svc.GenerateStory(context.Background(), domain.GenerateStoryRequest{
		Hero:     "Felix",
		Theme:    "friendship",
		AgeRange: "3-5",
	}, f.user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Felix and the friendship", resp.Title)
	assert.Equal(t, f.genai.text, resp.Story)
}

// A failed generation must give the deducted credits straight back.
func TestGenerateStoryRefundsOnFailure(t *testing.T) {
	f := newGenerationFixture(t, 50)
	f.genai.textErr = domain.ErrGeminiAPIFailed

	_, err := f.svc.GenerateStory(context.Background(), domain.GenerateStoryRequest{
		Hero:     "Luna",
		Theme:    "the moon garden",
		AgeRange: "6-8",
	}, f.user.ID.String())
	require.ErrorIs(t, err, domain.ErrGeminiAPIFailed)
	assert.Equal(t, 50, f.balance(t))
}

func TestGenerateStoryInsufficientCredits(t *testing.T) {
	f := newGenerationFixture(t, domain.COST_STORY_GENERATION-1)

	_, err := f.svc.GenerateStory(context.Background(), domain.GenerateStoryRequest{
		Hero:     "Luna",
		Theme:    "the moon garden",
		AgeRange: "6-8",
	}, f.user.ID.String())
	require.ErrorIs(t, err, domain.ErrInsufficientCredits)

	// Nothing reached the model and nothing was charged
	assert.Empty(t, f.genai.prompts)
	assert.Equal(t, domain.COST_STORY_GENERATION-1, f.balance(t))
}

func TestGenerateStorySuspendedUser(t *testing.T) {
	f := newGenerationFixture(t, 50)
	f.user.Status = domain.UserStatusSuspended
	require.NoError(t, f.userRepo.UpdateUser(context.Background(), f.user))

	_, err := f.svc.GenerateStory(context.Background(), domain.GenerateStoryRequest{
		Hero:     "Luna",
		Theme:    "the moon garden",
		AgeRange: "6-8",
	}, f.user.ID.String())
	require.ErrorIs(t, err, domain.ErrUserSuspended)
	assert.Equal(t, 50, f.balance(t))
}

func TestGenerateColoring(t *testing.T) {
	f := newGenerationFixture(t, 50)

	resp, err := f.svc.GenerateColoring(context.Background(), domain.GenerateColoringRequest{
		Subject: "a dinosaur on a skateboard",
	}, f.user.ID.String())
	require.NoError(t, err)

	assert.Equal(t, f.genai.image, resp.Image)
	assert.Equal(t, 50-domain.COST_COLORING_PAGE, resp.Balance)
	assert.Equal(t, 50-domain.COST_COLORING_PAGE, f.balance(t))

	require.Len(t, f.genai.prompts, 1)
	assert.Contains(t, f.genai.prompts[0], "a dinosaur on a skateboard")
	assert.Contains(t, f.genai.prompts[0], "Simple") // default style
}

func TestGenerateColoringRefundsOnFailure(t *testing.T) {
	f := newGenerationFixture(t, 50)
	f.genai.imageErr = domain.ErrGeminiAPIFailed

	_, err := f.svc.GenerateColoring(context.Background(), domain.GenerateColoringRequest{
		Subject: "a dinosaur",
	}, f.user.ID.String())
	require.ErrorIs(t, err, domain.ErrGeminiAPIFailed)
	assert.Equal(t, 50, f.balance(t))
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		name      string
		story     string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "with title line",
			story:     "TITLE: The Brave Fox\nOnce upon a time.",
			wantTitle: "The Brave Fox",
			wantBody:  "Once upon a time.",
		},
		{
			name:      "title only",
			story:     "TITLE: The Brave Fox",
			wantTitle: "The Brave Fox",
			wantBody:  "",
		},
		{
			name:      "no title line",
			story:     "Once upon a time.",
			wantTitle: "fallback",
			wantBody:  "Once upon a time.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := splitTitle(tt.story, "fallback")
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
