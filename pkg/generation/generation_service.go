package generation

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/pkg/content"
	"Storybrush-Backend/pkg/credit"
	"Storybrush-Backend/pkg/genai"
	"Storybrush-Backend/pkg/user"
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

type (
	GenerationService interface {
		GenerateStory(ctx context.Context, req domain.GenerateStoryRequest, userID string) (*domain.GenerateStoryResponse, error)
		GenerateColoring(ctx context.Context, req domain.GenerateColoringRequest, userID string) (*domain.GenerateColoringResponse, error)
	}

	generationService struct {
		userRepository user.UserRepository
		creditService  credit.CreditService
		contentService content.ContentService
		genaiClient    genai.GenaiClient
	}
)

func NewGenerationService(
	userRepository user.UserRepository,
	creditService credit.CreditService,
	contentService content.ContentService,
	genaiClient genai.GenaiClient,
) GenerationService {
	return &generationService{
		userRepository: userRepository,
		creditService:  creditService,
		contentService: contentService,
		genaiClient:    genaiClient,
	}
}

func (s *generationService) GenerateStory(ctx context.Context, req domain.GenerateStoryRequest, userID string) (*domain.GenerateStoryResponse, error) {
	if err := s.checkActive(ctx, userID); err != nil {
		return nil, err
	}

	// Credits come off before the costly call; a failed generation gives
	// them straight back so the user is never charged for nothing.
	balance, err := s.creditService.Deduct(ctx, userID, domain.COST_STORY_GENERATION, "story generation")
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"You are a children's author. Write an illustrated-story script for ages %s "+
			"starring a hero named %s, on the theme of %s. "+
			"Keep it warm, simple, and positive, in 6 short chapters. "+
			"Start with a single title line prefixed with 'TITLE: ' and then the story text.",
		req.AgeRange, req.Hero, req.Theme,
	)

	story, err := s.genaiClient.GenerateText(ctx, prompt)
	if err != nil {
		s.refund(ctx, userID, domain.COST_STORY_GENERATION, "story generation failed")
		return nil, err
	}

	title, body := splitTitle(story, fmt.Sprintf("%s and the %s", req.Hero, req.Theme))

	item, err := s.contentService.CreateContentItem(ctx, userID, domain.ContentTypeStory, title, body)
	if err != nil {
		return nil, err
	}

	return &domain.GenerateStoryResponse{
		ContentID: item.ID,
		Title:     title,
		Story:     body,
		Balance:   balance,
	}, nil
}

func (s *generationService) GenerateColoring(ctx context.Context, req domain.GenerateColoringRequest, userID string) (*domain.GenerateColoringResponse, error) {
	if err := s.checkActive(ctx, userID); err != nil {
		return nil, err
	}

	balance, err := s.creditService.Deduct(ctx, userID, domain.COST_COLORING_PAGE, "coloring page")
	if err != nil {
		return nil, err
	}

	style := req.Style
	if style == "" {
		style = "Simple"
	}
	prompt := fmt.Sprintf(
		"A black-and-white line-art coloring page for children of %s. "+
			"%s outlines, no shading, no color fill, white background, "+
			"suitable for printing on A4 paper.",
		req.Subject, style,
	)

	image, err := s.genaiClient.GenerateImage(ctx, prompt)
	if err != nil {
		s.refund(ctx, userID, domain.COST_COLORING_PAGE, "coloring page failed")
		return nil, err
	}

	item, err := s.contentService.CreateContentItem(ctx, userID, domain.ContentTypeColoring, req.Subject, image)
	if err != nil {
		return nil, err
	}

	return &domain.GenerateColoringResponse{
		ContentID: item.ID,
		Image:     image,
		Balance:   balance,
	}, nil
}

func (s *generationService) checkActive(ctx context.Context, userID string) error {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Status == domain.UserStatusSuspended {
		return domain.ErrUserSuspended
	}
	return nil
}

func (s *generationService) refund(ctx context.Context, userID string, amount int, reason string) {
	if _, err := s.creditService.Add(ctx, userID, amount, reason); err != nil {
		log.Errorf("generation: refund of %d credits failed for user=%s: %v", amount, userID, err)
	}
}

func splitTitle(story, fallback string) (string, string) {
	lines := strings.SplitN(story, "\n", 2)
	if strings.HasPrefix(lines[0], "TITLE: ") {
		title := strings.TrimSpace(strings.TrimPrefix(lines[0], "TITLE: "))
		body := ""
		if len(lines) == 2 {
			body = strings.TrimSpace(lines[1])
		}
		return title, body
	}
	return fallback, story
}
