package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo implementación del puerto PartnerRepository sobre PostgreSQL.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador de persistencia para terceros.
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

// Create persiste un nuevo tercero.
func (r *PartnerRepo) Create(partner *entity.Partner) error {
	query := `
		INSERT INTO partners (id, name, partner_type, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		partner.ID, partner.Name, partner.PartnerType, partner.Email,
		partner.Phone, partner.Address, partner.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

// GetByID obtiene un tercero por ID.
func (r *PartnerRepo) GetByID(id string) (*entity.Partner, error) {
	query := `
		SELECT id, name, partner_type, email, phone, address, created_at
		FROM partners WHERE id = $1`
	var p entity.Partner
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.PartnerType, &p.Email, &p.Phone, &p.Address, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return &p, nil
}

// List lista terceros, opcionalmente filtrados por tipo.
func (r *PartnerRepo) List(partnerType string, limit, offset int) ([]*entity.Partner, error) {
	query := `
		SELECT id, name, partner_type, email, phone, address, created_at
		FROM partners
		WHERE ($1 = '' OR partner_type = $1)
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, partnerType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()
	var list []*entity.Partner
	for rows.Next() {
		var p entity.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.PartnerType, &p.Email, &p.Phone, &p.Address, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un tercero existente.
func (r *PartnerRepo) Update(partner *entity.Partner) error {
	query := `
		UPDATE partners SET name = $2, email = $3, phone = $4, address = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		partner.ID, partner.Name, partner.Email, partner.Phone, partner.Address,
	)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	return nil
}

// Delete elimina un tercero por ID. Falla con ErrInvalidInput si todavía
// tiene documentos asociados.
func (r *PartnerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("delete partner: %w", err)
	}
	return nil
}
