package club

import (
	"context"
	"strings"

	"github.com/getsentry/sentry-go"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/publishing"
)

const anonymousDonor = "Anonymous"

type campaignService struct {
	reporter
	repo CampaignRepository
}

var _ CampaignService = (*campaignService)(nil)

func NewCampaignService(repo CampaignRepository, logger *logrus.Logger, hub *sentry.Hub) (CampaignService, error) {
	if repo == nil {
		return nil, eris.New("campaign repository is required")
	}
	return &campaignService{reporter: newReporter("donations", logger, hub), repo: repo}, nil
}

func (s *campaignService) Create(ctx context.Context, input CampaignInput) (*Campaign, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)
	input.CreatedBy = strings.TrimSpace(input.CreatedBy)

	err := publishing.Validated(validation.ValidateStruct(&input,
		validation.Field(&input.Title, validation.Required.Error("title is required"), validation.RuneLength(0, 255)),
		validation.Field(&input.Description, validation.Required.Error("description is required")),
		validation.Field(&input.TargetAmount, validation.Required.Error("targetAmount is required"), validation.Min(0.01).Error("must be positive")),
		validation.Field(&input.StartDate, validation.Required.Error("startDate is required")),
		validation.Field(&input.EndDate, validation.Required.Error("endDate is required")),
		validation.Field(&input.Category, validation.Required.Error("category is required")),
		validation.Field(&input.CreatedBy, validation.Required.Error("createdBy is required")),
	))
	if err != nil {
		return nil, err
	}

	start, err := publishing.ParseDate("startDate", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := publishing.ParseDate("endDate", input.EndDate)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, &end); err != nil {
		return nil, err
	}

	campaign := &Campaign{
		Title:        input.Title,
		Description:  input.Description,
		TargetAmount: input.TargetAmount,
		StartDate:    start,
		EndDate:      end,
		Status:       CampaignActive,
		Category:     input.Category,
		Image:        strings.TrimSpace(input.Image),
		CreatedBy:    input.CreatedBy,
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"title": campaign.Title}, err, "creating campaign")
	}
	return campaign, nil
}

func (s *campaignService) Get(ctx context.Context, id string) (*Campaign, error) {
	return load[Campaign](ctx, s.reporter, s.repo, id, "campaign")
}

// List defaults to active campaigns. "all" lifts the status filter.
func (s *campaignService) List(ctx context.Context, status string) ([]Campaign, error) {
	filter := CampaignActive
	switch raw := upper(status); raw {
	case "":
	case "ALL":
		filter = ""
	default:
		if !oneOf(CampaignStatus(raw), CampaignStatuses) {
			return nil, publishing.NewValidationError("status", "must be one of "+joined(CampaignStatuses)+" or ALL")
		}
		filter = CampaignStatus(raw)
	}

	campaigns, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing campaigns")
	}
	return campaigns, nil
}

func (s *campaignService) Update(ctx context.Context, id string, patch CampaignPatch) (*Campaign, error) {
	campaign, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	campaign.Donations = nil

	if value := present(patch.Title); value != nil {
		campaign.Title = *value
	}
	if value := present(patch.Description); value != nil {
		campaign.Description = *value
	}
	if patch.TargetAmount != nil {
		if *patch.TargetAmount <= 0 {
			return nil, publishing.NewValidationError("targetAmount", "must be positive")
		}
		campaign.TargetAmount = *patch.TargetAmount
	}
	if value := present(patch.StartDate); value != nil {
		start, err := publishing.ParseDate("startDate", *value)
		if err != nil {
			return nil, err
		}
		campaign.StartDate = start
	}
	if value := present(patch.EndDate); value != nil {
		end, err := publishing.ParseDate("endDate", *value)
		if err != nil {
			return nil, err
		}
		campaign.EndDate = end
	}
	if err := checkRange(campaign.StartDate, &campaign.EndDate); err != nil {
		return nil, err
	}
	if value := present(patch.Status); value != nil {
		status := CampaignStatus(upper(*value))
		if !oneOf(status, CampaignStatuses) {
			return nil, publishing.NewValidationError("status", "must be one of "+joined(CampaignStatuses))
		}
		campaign.Status = status
	}
	if value := present(patch.Category); value != nil {
		campaign.Category = *value
	}
	assignText(&campaign.Image, patch.Image)

	if err := s.repo.Save(ctx, campaign); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": campaign.ID}, err, "updating campaign")
	}
	return campaign, nil
}

func (s *campaignService) Delete(ctx context.Context, id string) error {
	return remove[Campaign](ctx, s.reporter, s.repo, id, "campaign")
}

// Donate records a donation against an active campaign and returns the updated totals.
func (s *campaignService) Donate(ctx context.Context, campaignID string, input DonationInput) (*Campaign, error) {
	campaign, err := s.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status != CampaignActive {
		return nil, publishing.NewValidationError("campaignId", "campaign is not accepting donations")
	}

	input.DonorName = strings.TrimSpace(input.DonorName)
	if input.DonorName == "" && input.IsAnonymous {
		input.DonorName = anonymousDonor
	}

	err = publishing.Validated(validation.ValidateStruct(&input,
		validation.Field(&input.DonorName, validation.Required.Error("donorName is required unless anonymous")),
		validation.Field(&input.Amount, validation.Required.Error("amount is required"), validation.Min(0.01).Error("must be positive")),
	))
	if err != nil {
		return nil, err
	}

	donation := &Donation{
		CampaignID:  campaign.ID,
		DonorName:   input.DonorName,
		Amount:      input.Amount,
		Message:     strings.TrimSpace(input.Message),
		IsAnonymous: input.IsAnonymous,
	}

	updated, err := s.repo.Donate(ctx, donation)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"campaign_id": campaign.ID}, err, "recording donation")
	}
	return updated, nil
}
