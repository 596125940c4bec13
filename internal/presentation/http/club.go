package http

import (
	"context"
	stdhttp "net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/club"
)

type ActivityBody struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Type        *string  `json:"type,omitempty" doc:"WORKSHOP, SEMINAR, COMPETITION, VOLUNTEER, SOCIAL, TRAINING, MEETING, CEREMONY, FUNDRAISING or EXHIBITION"`
	Status      *string  `json:"status,omitempty" doc:"Update only; new activities start in PLANNING"`
	StartDate   *string  `json:"startDate,omitempty" doc:"RFC 3339 timestamp or YYYY-MM-DD"`
	EndDate     *string  `json:"endDate,omitempty" doc:"Blank clears it on update"`
	Location    *string  `json:"location,omitempty"`
	IsPublic    *bool    `json:"isPublic,omitempty" doc:"Defaults to true"`
	Image       *string  `json:"image,omitempty"`
	Gallery     []string `json:"gallery,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
	ProjectID   *string  `json:"projectId,omitempty" doc:"Blank detaches the activity on update"`
	AuthorID    *string  `json:"authorId,omitempty" doc:"Create only"`
	AuthorEmail *string  `json:"authorEmail,omitempty" doc:"Create only; wins over authorId"`
}

type activityQuery struct {
	ID        string `query:"id" doc:"Activity id"`
	Type      string `query:"type"`
	Status    string `query:"status"`
	IsPublic  string `query:"isPublic" doc:"true (default), false or all"`
	ProjectID string `query:"projectId"`
	Upcoming  bool   `query:"upcoming" doc:"Only published activities that have not started"`
	Limit     int    `query:"limit" minimum:"0"`
}

type ProjectBody struct {
	_                struct{} `json:"-" additionalProperties:"true"`
	Code             *string  `json:"code,omitempty" doc:"Unique; create only"`
	Title            *string  `json:"title,omitempty"`
	Description      *string  `json:"description,omitempty"`
	ShortDescription *string  `json:"shortDescription,omitempty"`
	Year             *int     `json:"year,omitempty" doc:"Defaults to the current year"`
	Status           *string  `json:"status,omitempty" doc:"PLANNING, IN_PROGRESS, ON_HOLD, COMPLETED or CANCELLED"`
	Priority         *string  `json:"priority,omitempty" doc:"LOW, MEDIUM, HIGH or URGENT"`
	StartDate        *string  `json:"startDate,omitempty"`
	EndDate          *string  `json:"endDate,omitempty" doc:"Defaults to startDate"`
	TotalBudget      *float64 `json:"totalBudget,omitempty"`
	UsedBudget       *float64 `json:"usedBudget,omitempty" doc:"Update only"`
	Objectives       *string  `json:"objectives,omitempty"`
	TargetGroup      *string  `json:"targetGroup,omitempty"`
	ExpectedResults  *string  `json:"expectedResults,omitempty"`
	Sponsor          *string  `json:"sponsor,omitempty"`
	Coordinator      *string  `json:"coordinator,omitempty"`
	IsActive         *bool    `json:"isActive,omitempty"`
	Image            *string  `json:"image,omitempty"`
	AuthorID         *string  `json:"authorId,omitempty" doc:"Create only"`
	AuthorEmail      *string  `json:"authorEmail,omitempty" doc:"Create only"`
}

type projectQuery struct {
	ID       string `query:"id" doc:"Project id; the response includes its activities"`
	Year     int    `query:"year"`
	Status   string `query:"status"`
	Priority string `query:"priority"`
	IsActive string `query:"isActive" doc:"true, false or all (default)"`
}

type DocumentBody struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	FileName    *string  `json:"fileName,omitempty"`
	FileURL     *string  `json:"fileUrl,omitempty"`
	FileSize    *int64   `json:"fileSize,omitempty"`
	Type        *string  `json:"type,omitempty" doc:"Defaults to document"`
	IsPublic    *bool    `json:"isPublic,omitempty" doc:"Defaults to false"`
	UploadedBy  *string  `json:"uploadedBy,omitempty"`
}

type documentQuery struct {
	ID     string `query:"id" doc:"Document id"`
	Type   string `query:"type"`
	Public string `query:"public" doc:"true, false or all (default)"`
}

type documentActionQuery struct {
	ID     string `query:"id" required:"true"`
	Action string `query:"action" required:"true" enum:"download"`
}

type CampaignBody struct {
	_            struct{} `json:"-" additionalProperties:"true"`
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	TargetAmount *float64 `json:"targetAmount,omitempty"`
	StartDate    *string  `json:"startDate,omitempty"`
	EndDate      *string  `json:"endDate,omitempty"`
	Status       *string  `json:"status,omitempty" doc:"Update only; ACTIVE, PAUSED, COMPLETED or CANCELLED"`
	Category     *string  `json:"category,omitempty"`
	Image        *string  `json:"image,omitempty"`
	CreatedBy    *string  `json:"createdBy,omitempty"`
}

type campaignQuery struct {
	ID     string `query:"id" doc:"Campaign id; the response includes its donations"`
	Status string `query:"status" doc:"Defaults to ACTIVE; ALL disables it"`
}

type DonationBody struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	DonorName   *string  `json:"donorName,omitempty" doc:"May be empty for anonymous donations"`
	Amount      *float64 `json:"amount,omitempty"`
	Message     *string  `json:"message,omitempty"`
	IsAnonymous *bool    `json:"isAnonymous,omitempty"`
}

type donationInput struct {
	CampaignID string `query:"campaignId" required:"true"`
	Body       DonationBody
}

func (s *Server) registerActivityRoutes() {
	tags := []string{"activity"}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-activities",
		Method:      stdhttp.MethodGet,
		Path:        "/api/activities",
		Summary:     "Fetch one activity by id, or list them by start date",
		Tags:        tags,
	}, func(ctx context.Context, input *activityQuery) (*envelopeResponse[any], error) {
		if input.ID != "" {
			activity, err := s.activities.Get(ctx, input.ID)
			if err != nil {
				return nil, s.problem(ctx, err, "activity", "fetching activity", logrus.Fields{"id": input.ID})
			}
			return respond[any](stdhttp.StatusOK, activity, ""), nil
		}

		activities, err := s.activities.List(ctx, club.ActivityQuery{
			Type:      input.Type,
			Status:    input.Status,
			IsPublic:  input.IsPublic,
			ProjectID: input.ProjectID,
			Upcoming:  input.Upcoming,
			Limit:     input.Limit,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "activity", "listing activities", nil)
		}
		return respondList(activities), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-activity",
		Method:        stdhttp.MethodPost,
		Path:          "/api/activities",
		Summary:       "Create activity",
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *bodyInput[ActivityBody]) (*envelopeResponse[*club.Activity], error) {
		b := input.Body
		activity, err := s.activities.Create(ctx, club.ActivityInput{
			Title:       deref(b.Title),
			Description: deref(b.Description),
			Type:        deref(b.Type),
			StartDate:   deref(b.StartDate),
			EndDate:     deref(b.EndDate),
			Location:    deref(b.Location),
			IsPublic:    b.IsPublic,
			Image:       deref(b.Image),
			Gallery:     b.Gallery,
			CategoryID:  deref(b.CategoryID),
			ProjectID:   deref(b.ProjectID),
			AuthorID:    deref(b.AuthorID),
			AuthorEmail: deref(b.AuthorEmail),
		})
		if err != nil {
			return nil, s.problem(ctx, err, "activity", "creating activity", nil)
		}
		return respond(stdhttp.StatusCreated, activity, "activity created"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-activity",
		Method:      stdhttp.MethodPut,
		Path:        "/api/activities",
		Summary:     "Update activity",
		Tags:        tags,
	}, func(ctx context.Context, input *updateInput[ActivityBody]) (*envelopeResponse[*club.Activity], error) {
		b := input.Body
		activity, err := s.activities.Update(ctx, input.ID, club.ActivityPatch{
			Title:       b.Title,
			Description: b.Description,
			Type:        b.Type,
			Status:      b.Status,
			StartDate:   b.StartDate,
			EndDate:     b.EndDate,
			Location:    b.Location,
			IsPublic:    b.IsPublic,
			Image:       b.Image,
			Gallery:     sliceOrNil(b.Gallery),
			CategoryID:  b.CategoryID,
			ProjectID:   b.ProjectID,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "activity", "updating activity", logrus.Fields{"id": input.ID})
		}
		return respond(stdhttp.StatusOK, activity, "activity updated"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-activity",
		Method:      stdhttp.MethodDelete,
		Path:        "/api/activities",
		Summary:     "Delete activity",
		Tags:        tags,
	}, func(ctx context.Context, input *idQuery) (*envelopeResponse[any], error) {
		if err := s.activities.Delete(ctx, input.ID); err != nil {
			return nil, s.problem(ctx, err, "activity", "deleting activity", logrus.Fields{"id": input.ID})
		}
		return respond[any](stdhttp.StatusOK, nil, "activity deleted"), nil
	})
}

func (s *Server) registerProjectRoutes() {
	tags := []string{"project"}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-projects",
		Method:      stdhttp.MethodGet,
		Path:        "/api/projects",
		Summary:     "Fetch one project with its activities, or list them by priority",
		Tags:        tags,
	}, func(ctx context.Context, input *projectQuery) (*envelopeResponse[any], error) {
		if input.ID != "" {
			project, err := s.projects.Get(ctx, input.ID)
			if err != nil {
				return nil, s.problem(ctx, err, "project", "fetching project", logrus.Fields{"id": input.ID})
			}
			return respond[any](stdhttp.StatusOK, project, ""), nil
		}

		projects, err := s.projects.List(ctx, club.ProjectQuery{
			Year:     input.Year,
			Status:   input.Status,
			Priority: input.Priority,
			IsActive: input.IsActive,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "project", "listing projects", nil)
		}
		return respondList(projects), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-project",
		Method:        stdhttp.MethodPost,
		Path:          "/api/projects",
		Summary:       "Create project",
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *bodyInput[ProjectBody]) (*envelopeResponse[*club.Project], error) {
		b := input.Body
		project, err := s.projects.Create(ctx, club.ProjectInput{
			Code:             deref(b.Code),
			Title:            deref(b.Title),
			Description:      deref(b.Description),
			ShortDescription: deref(b.ShortDescription),
			Year:             deref(b.Year),
			Status:           deref(b.Status),
			Priority:         deref(b.Priority),
			StartDate:        deref(b.StartDate),
			EndDate:          deref(b.EndDate),
			TotalBudget:      b.TotalBudget,
			Objectives:       deref(b.Objectives),
			TargetGroup:      deref(b.TargetGroup),
			ExpectedResults:  deref(b.ExpectedResults),
			Sponsor:          deref(b.Sponsor),
			Coordinator:      deref(b.Coordinator),
			IsActive:         b.IsActive,
			Image:            deref(b.Image),
			AuthorID:         deref(b.AuthorID),
			AuthorEmail:      deref(b.AuthorEmail),
		})
		if err != nil {
			return nil, s.problem(ctx, err, "project", "creating project", nil)
		}
		return respond(stdhttp.StatusCreated, project, "project created"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-project",
		Method:      stdhttp.MethodPut,
		Path:        "/api/projects",
		Summary:     "Update project",
		Tags:        tags,
	}, func(ctx context.Context, input *updateInput[ProjectBody]) (*envelopeResponse[*club.Project], error) {
		b := input.Body
		project, err := s.projects.Update(ctx, input.ID, club.ProjectPatch{
			Title:            b.Title,
			Description:      b.Description,
			ShortDescription: b.ShortDescription,
			Year:             b.Year,
			Status:           b.Status,
			Priority:         b.Priority,
			StartDate:        b.StartDate,
			EndDate:          b.EndDate,
			TotalBudget:      b.TotalBudget,
			UsedBudget:       b.UsedBudget,
			Objectives:       b.Objectives,
			TargetGroup:      b.TargetGroup,
			ExpectedResults:  b.ExpectedResults,
			Sponsor:          b.Sponsor,
			Coordinator:      b.Coordinator,
			IsActive:         b.IsActive,
			Image:            b.Image,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "project", "updating project", logrus.Fields{"id": input.ID})
		}
		return respond(stdhttp.StatusOK, project, "project updated"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-project",
		Method:      stdhttp.MethodDelete,
		Path:        "/api/projects",
		Summary:     "Delete project; its activities are kept and detached",
		Tags:        tags,
	}, func(ctx context.Context, input *idQuery) (*envelopeResponse[any], error) {
		if err := s.projects.Delete(ctx, input.ID); err != nil {
			return nil, s.problem(ctx, err, "project", "deleting project", logrus.Fields{"id": input.ID})
		}
		return respond[any](stdhttp.StatusOK, nil, "project deleted"), nil
	})
}

func (s *Server) registerDocumentRoutes() {
	tags := []string{"document"}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-documents",
		Method:      stdhttp.MethodGet,
		Path:        "/api/documents",
		Summary:     "Fetch one document by id, or list them newest first",
		Tags:        tags,
	}, func(ctx context.Context, input *documentQuery) (*envelopeResponse[any], error) {
		if input.ID != "" {
			document, err := s.documents.Get(ctx, input.ID)
			if err != nil {
				return nil, s.problem(ctx, err, "document", "fetching document", logrus.Fields{"id": input.ID})
			}
			return respond[any](stdhttp.StatusOK, document, ""), nil
		}

		documents, err := s.documents.List(ctx, club.DocumentQuery{Type: input.Type, IsPublic: input.Public})
		if err != nil {
			return nil, s.problem(ctx, err, "document", "listing documents", nil)
		}
		return respondList(documents), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-document",
		Method:        stdhttp.MethodPost,
		Path:          "/api/documents",
		Summary:       "Register document",
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *bodyInput[DocumentBody]) (*envelopeResponse[*club.Document], error) {
		b := input.Body
		document, err := s.documents.Create(ctx, club.DocumentInput{
			Title:       deref(b.Title),
			Description: deref(b.Description),
			FileName:    deref(b.FileName),
			FileURL:     deref(b.FileURL),
			FileSize:    deref(b.FileSize),
			Type:        deref(b.Type),
			IsPublic:    deref(b.IsPublic),
			UploadedBy:  deref(b.UploadedBy),
		})
		if err != nil {
			return nil, s.problem(ctx, err, "document", "creating document", nil)
		}
		return respond(stdhttp.StatusCreated, document, "document created"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-document",
		Method:      stdhttp.MethodPut,
		Path:        "/api/documents",
		Summary:     "Update document",
		Tags:        tags,
	}, func(ctx context.Context, input *updateInput[DocumentBody]) (*envelopeResponse[*club.Document], error) {
		b := input.Body
		document, err := s.documents.Update(ctx, input.ID, club.DocumentPatch{
			Title:       b.Title,
			Description: b.Description,
			FileName:    b.FileName,
			FileURL:     b.FileURL,
			FileSize:    b.FileSize,
			Type:        b.Type,
			IsPublic:    b.IsPublic,
			UploadedBy:  b.UploadedBy,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "document", "updating document", logrus.Fields{"id": input.ID})
		}
		return respond(stdhttp.StatusOK, document, "document updated"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "record-document-download",
		Method:      stdhttp.MethodPatch,
		Path:        "/api/documents",
		Summary:     "Count a document download",
		Tags:        tags,
	}, func(ctx context.Context, input *documentActionQuery) (*envelopeResponse[*club.Document], error) {
		document, err := s.documents.RecordDownload(ctx, input.ID)
		if err != nil {
			return nil, s.problem(ctx, err, "document", "recording download", logrus.Fields{"id": input.ID})
		}
		return respond(stdhttp.StatusOK, document, ""), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-document",
		Method:      stdhttp.MethodDelete,
		Path:        "/api/documents",
		Summary:     "Delete document",
		Tags:        tags,
	}, func(ctx context.Context, input *idQuery) (*envelopeResponse[any], error) {
		if err := s.documents.Delete(ctx, input.ID); err != nil {
			return nil, s.problem(ctx, err, "document", "deleting document", logrus.Fields{"id": input.ID})
		}
		return respond[any](stdhttp.StatusOK, nil, "document deleted"), nil
	})
}

func (s *Server) registerDonationRoutes() {
	tags := []string{"donation"}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-donation-campaigns",
		Method:      stdhttp.MethodGet,
		Path:        "/api/donations",
		Summary:     "Fetch one campaign with its donations, or list campaigns newest first",
		Tags:        tags,
	}, func(ctx context.Context, input *campaignQuery) (*envelopeResponse[any], error) {
		if input.ID != "" {
			campaign, err := s.donations.Get(ctx, input.ID)
			if err != nil {
				return nil, s.problem(ctx, err, "campaign", "fetching campaign", logrus.Fields{"id": input.ID})
			}
			return respond[any](stdhttp.StatusOK, campaign, ""), nil
		}

		campaigns, err := s.donations.List(ctx, input.Status)
		if err != nil {
			return nil, s.problem(ctx, err, "campaign", "listing campaigns", nil)
		}
		return respondList(campaigns), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-donation-campaign",
		Method:        stdhttp.MethodPost,
		Path:          "/api/donations",
		Summary:       "Open a donation campaign",
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *bodyInput[CampaignBody]) (*envelopeResponse[*club.Campaign], error) {
		b := input.Body
		campaign, err := s.donations.Create(ctx, club.CampaignInput{
			Title:        deref(b.Title),
			Description:  deref(b.Description),
			TargetAmount: deref(b.TargetAmount),
			StartDate:    deref(b.StartDate),
			EndDate:      deref(b.EndDate),
			Category:     deref(b.Category),
			Image:        deref(b.Image),
			CreatedBy:    deref(b.CreatedBy),
		})
		if err != nil {
			return nil, s.problem(ctx, err, "campaign", "creating campaign", nil)
		}
		return respond(stdhttp.StatusCreated, campaign, "campaign created"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "update-donation-campaign",
		Method:      stdhttp.MethodPut,
		Path:        "/api/donations",
		Summary:     "Update donation campaign",
		Tags:        tags,
	}, func(ctx context.Context, input *updateInput[CampaignBody]) (*envelopeResponse[*club.Campaign], error) {
		b := input.Body
		campaign, err := s.donations.Update(ctx, input.ID, club.CampaignPatch{
			Title:        b.Title,
			Description:  b.Description,
			TargetAmount: b.TargetAmount,
			StartDate:    b.StartDate,
			EndDate:      b.EndDate,
			Status:       b.Status,
			Category:     b.Category,
			Image:        b.Image,
		})
		if err != nil {
			return nil, s.problem(ctx, err, "campaign", "updating campaign", logrus.Fields{"id": input.ID})
		}
		return respond(stdhttp.StatusOK, campaign, "campaign updated"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-donation-campaign",
		Method:      stdhttp.MethodDelete,
		Path:        "/api/donations",
		Summary:     "Delete donation campaign and its donations",
		Tags:        tags,
	}, func(ctx context.Context, input *idQuery) (*envelopeResponse[any], error) {
		if err := s.donations.Delete(ctx, input.ID); err != nil {
			return nil, s.problem(ctx, err, "campaign", "deleting campaign", logrus.Fields{"id": input.ID})
		}
		return respond[any](stdhttp.StatusOK, nil, "campaign deleted"), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-donation",
		Method:        stdhttp.MethodPost,
		Path:          "/api/donations/contributions",
		Summary:       "Donate to an active campaign",
		Tags:          tags,
		DefaultStatus: stdhttp.StatusCreated,
	}, func(ctx context.Context, input *donationInput) (*envelopeResponse[*club.Campaign], error) {
		b := input.Body
		campaign, err := s.donations.Donate(ctx, input.CampaignID, club.DonationInput{
			DonorName:   deref(b.DonorName),
			Amount:      deref(b.Amount),
			Message:     deref(b.Message),
			IsAnonymous: deref(b.IsAnonymous),
		})
		if err != nil {
			return nil, s.problem(ctx, err, "campaign", "recording donation", logrus.Fields{"campaign_id": input.CampaignID})
		}
		return respond(stdhttp.StatusCreated, campaign, "thank you for your donation"), nil
	})
}

// sliceOrNil tells an absent JSON array apart from a sent one.
func sliceOrNil(values []string) *[]string {
	if values == nil {
		return nil
	}
	return &values
}
