package professional

import "buildmart/internal/domain"

type CreateProfessionalRequest struct {
	Profession string `json:"profession" validate:"required,oneof=contractor architect dealer rental_merchant"`
	Company    string `json:"company" validate:"max=255"`
	City       string `json:"city" validate:"required,max=100"`
	Bio        string `json:"bio" validate:"max=2000"`
}

type ProfessionalDTO struct {
	ID         uint    `json:"id"`
	UserID     uint    `json:"userId"`
	Profession string  `json:"profession"`
	Company    string  `json:"company"`
	City       string  `json:"city"`
	Bio        string  `json:"bio"`
	Rating     float64 `json:"rating"`
}

func toDTO(p *domain.Professional) ProfessionalDTO {
	return ProfessionalDTO{
		ID:         p.ID,
		UserID:     p.UserID,
		Profession: string(p.Profession),
		Company:    p.Company,
		City:       p.City,
		Bio:        p.Bio,
		Rating:     p.Rating,
	}
}
