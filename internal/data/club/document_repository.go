package club

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domainclub "smoweb/app/internal/domain/club"
	"smoweb/app/internal/domain/publishing"
)

type DocumentRepository struct {
	table[DocumentRecord]
}

var _ domainclub.DocumentRepository = (*DocumentRepository)(nil)

func NewDocumentRepository(db *gorm.DB, logger *logrus.Logger) (*DocumentRepository, error) {
	t, err := newTable[DocumentRecord](db, logger, "document")
	if err != nil {
		return nil, err
	}
	return &DocumentRepository{table: t}, nil
}

func (r *DocumentRepository) Create(ctx context.Context, document *domainclub.Document) error {
	if document == nil {
		return eris.New("document is nil")
	}

	record := toDocumentRecord(document)
	record.ID = uuid.NewString()
	if err := r.create(ctx, record); err != nil {
		return err
	}
	*document = toDomainDocument(record)
	return nil
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (*domainclub.Document, error) {
	record, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	document := toDomainDocument(record)
	return &document, nil
}

// List returns documents newest first.
func (r *DocumentRepository) List(ctx context.Context, filter domainclub.DocumentFilter) ([]domainclub.Document, error) {
	query := r.query(ctx)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsPublic != nil {
		query = query.Where("is_public = ?", *filter.IsPublic)
	}

	records, err := r.list(query.Order("created_at DESC"))
	if err != nil {
		return nil, err
	}

	documents := make([]domainclub.Document, 0, len(records))
	for i := range records {
		documents = append(documents, toDomainDocument(&records[i]))
	}
	return documents, nil
}

func (r *DocumentRepository) Save(ctx context.Context, document *domainclub.Document) error {
	if document == nil {
		return eris.New("document is nil")
	}

	stored, err := r.save(ctx, document.ID, toDocumentRecord(document), "download_count")
	if err != nil {
		return err
	}
	*document = toDomainDocument(stored)
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

// RecordDownload increments download_count in place, so concurrent downloads are all counted.
func (r *DocumentRepository) RecordDownload(ctx context.Context, id string) (*domainclub.Document, error) {
	var record DocumentRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&DocumentRecord{}).Where("id = ?", id).
			UpdateColumn("download_count", gorm.Expr("download_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return publishing.ErrNotFound
		}
		return tx.Where("id = ?", id).First(&record).Error
	})
	if err != nil {
		if eris.Is(err, publishing.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "document id %s", id)
		}
		r.logError(logrus.Fields{"id": id}, err, "recording download")
		return nil, eris.Wrapf(err, "recording download: %s", id)
	}

	document := toDomainDocument(&record)
	return &document, nil
}

type CampaignRepository struct {
	table[CampaignRecord]
}

var _ domainclub.CampaignRepository = (*CampaignRepository)(nil)

func NewCampaignRepository(db *gorm.DB, logger *logrus.Logger) (*CampaignRepository, error) {
	t, err := newTable[CampaignRecord](db, logger, "campaign")
	if err != nil {
		return nil, err
	}
	return &CampaignRepository{table: t}, nil
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *domainclub.Campaign) error {
	if campaign == nil {
		return eris.New("campaign is nil")
	}

	record := toCampaignRecord(campaign)
	record.ID = uuid.NewString()
	if err := r.create(ctx, record); err != nil {
		return err
	}
	*campaign = toDomainCampaign(record)
	return nil
}

// Get includes the campaign's donations, newest first.
func (r *CampaignRepository) Get(ctx context.Context, id string) (*domainclub.Campaign, error) {
	record, err := r.withDonations(r.db.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "campaign id %s", id)
		}
		r.logError(logrus.Fields{"id": id}, err, "fetching campaign")
		return nil, eris.Wrapf(err, "fetching campaign: %s", id)
	}

	campaign := toDomainCampaign(record)
	return &campaign, nil
}

// List returns campaigns newest first. An empty status lists all of them.
func (r *CampaignRepository) List(ctx context.Context, status domainclub.CampaignStatus) ([]domainclub.Campaign, error) {
	query := r.query(ctx)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	records, err := r.list(query.Order("created_at DESC"))
	if err != nil {
		return nil, err
	}

	campaigns := make([]domainclub.Campaign, 0, len(records))
	for i := range records {
		campaigns = append(campaigns, toDomainCampaign(&records[i]))
	}
	return campaigns, nil
}

func (r *CampaignRepository) Save(ctx context.Context, campaign *domainclub.Campaign) error {
	if campaign == nil {
		return eris.New("campaign is nil")
	}

	stored, err := r.save(ctx, campaign.ID, toCampaignRecord(campaign), "current_amount", "donor_count")
	if err != nil {
		return err
	}
	*campaign = toDomainCampaign(stored)
	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *CampaignRepository) Donate(ctx context.Context, donation *domainclub.Donation) (*domainclub.Campaign, error) {
	if donation == nil {
		return nil, eris.New("donation is nil")
	}

	record := &DonationRecord{
		ID:          uuid.NewString(),
		CampaignID:  donation.CampaignID,
		DonorName:   donation.DonorName,
		Amount:      donation.Amount,
		Message:     donation.Message,
		IsAnonymous: donation.IsAnonymous,
	}

	var campaign *CampaignRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("*").Create(record).Error; err != nil {
			return err
		}

		result := tx.Model(&CampaignRecord{}).Where("id = ?", donation.CampaignID).UpdateColumns(map[string]any{
			"current_amount": gorm.Expr("current_amount + ?", donation.Amount),
			"donor_count":    gorm.Expr("donor_count + ?", 1),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return publishing.ErrNotFound
		}

		var err error
		campaign, err = r.withDonations(tx, donation.CampaignID)
		return err
	})
	if err != nil {
		if eris.Is(err, publishing.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) || isForeignKeyViolation(err) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "campaign id %s", donation.CampaignID)
		}
		r.logError(logrus.Fields{"campaign_id": donation.CampaignID}, err, "recording donation")
		return nil, eris.Wrapf(err, "recording donation: %s", donation.CampaignID)
	}

	*donation = toDomainDonation(record)
	updated := toDomainCampaign(campaign)
	return &updated, nil
}

func (r *CampaignRepository) withDonations(db *gorm.DB, id string) (*CampaignRecord, error) {
	var record CampaignRecord
	err := db.
		Preload("Donations", func(q *gorm.DB) *gorm.DB {
			return q.Order("created_at DESC").Order("id DESC")
		}).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func toDocumentRecord(document *domainclub.Document) *DocumentRecord {
	return &DocumentRecord{
		ID:            document.ID,
		Title:         document.Title,
		Description:   document.Description,
		FileName:      document.FileName,
		FileURL:       document.FileURL,
		FileSize:      document.FileSize,
		Type:          document.Type,
		IsPublic:      document.IsPublic,
		DownloadCount: document.DownloadCount,
		UploadedBy:    document.UploadedBy,
	}
}

func toDomainDocument(record *DocumentRecord) domainclub.Document {
	return domainclub.Document{
		ID:            record.ID,
		Title:         record.Title,
		Description:   record.Description,
		FileName:      record.FileName,
		FileURL:       record.FileURL,
		FileSize:      record.FileSize,
		Type:          record.Type,
		IsPublic:      record.IsPublic,
		DownloadCount: record.DownloadCount,
		UploadedBy:    record.UploadedBy,
		CreatedAt:     record.CreatedAt.UTC(),
		UpdatedAt:     record.UpdatedAt.UTC(),
	}
}

func toCampaignRecord(campaign *domainclub.Campaign) *CampaignRecord {
	return &CampaignRecord{
		ID:            campaign.ID,
		Title:         campaign.Title,
		Description:   campaign.Description,
		TargetAmount:  campaign.TargetAmount,
		CurrentAmount: campaign.CurrentAmount,
		StartDate:     campaign.StartDate.UTC(),
		EndDate:       campaign.EndDate.UTC(),
		Status:        string(campaign.Status),
		Category:      campaign.Category,
		Image:         campaign.Image,
		DonorCount:    campaign.DonorCount,
		CreatedBy:     campaign.CreatedBy,
	}
}

func toDomainCampaign(record *CampaignRecord) domainclub.Campaign {
	campaign := domainclub.Campaign{
		ID:            record.ID,
		Title:         record.Title,
		Description:   record.Description,
		TargetAmount:  record.TargetAmount,
		CurrentAmount: record.CurrentAmount,
		StartDate:     record.StartDate.UTC(),
		EndDate:       record.EndDate.UTC(),
		Status:        domainclub.CampaignStatus(record.Status),
		Category:      record.Category,
		Image:         record.Image,
		DonorCount:    record.DonorCount,
		CreatedBy:     record.CreatedBy,
		CreatedAt:     record.CreatedAt.UTC(),
		UpdatedAt:     record.UpdatedAt.UTC(),
	}
	if record.Donations != nil {
		campaign.Donations = make([]domainclub.Donation, 0, len(record.Donations))
		for i := range record.Donations {
			campaign.Donations = append(campaign.Donations, toDomainDonation(&record.Donations[i]))
		}
	}
	return campaign
}

func toDomainDonation(record *DonationRecord) domainclub.Donation {
	return domainclub.Donation{
		ID:          record.ID,
		CampaignID:  record.CampaignID,
		DonorName:   record.DonorName,
		Amount:      record.Amount,
		Message:     record.Message,
		IsAnonymous: record.IsAnonymous,
		CreatedAt:   record.CreatedAt.UTC(),
	}
}
