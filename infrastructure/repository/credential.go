package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mediation-stats-api/infrastructure/database/postgres"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/pkg/secret"
)

const (
	credentialsTable = "user_credentials uc"
)

type CredentialRepository interface {
	// GetByUserID retorna nil quando o usuário não tem credencial salva
	GetByUserID(ctx context.Context, userID string) (*domain.UserCredential, error)
	// ListConfigured lista todos os usuários com conta e chave preenchidas
	ListConfigured(ctx context.Context) ([]*domain.UserCredential, error)
	SaveOrUpdate(ctx context.Context, credential *domain.UserCredential) error
}

type credentialRepository struct {
	conn postgres.Conn
	box  *secret.Box
}

func NewCredentialRepository(conn postgres.Conn, box *secret.Box) CredentialRepository {
	return &credentialRepository{
		conn: conn,
		box:  box,
	}
}

func (r *credentialRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserCredential, error) {
	query, args, err := squirrel.
		Select("uc.user_id, uc.account_id, uc.secret_key, uc.updated_at").
		From(credentialsTable).
		Where(squirrel.Eq{"uc.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	credential, err := r.scanCredential(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return credential, nil
}

func (r *credentialRepository) ListConfigured(ctx context.Context) ([]*domain.UserCredential, error) {
	query, args, err := squirrel.
		Select("uc.user_id, uc.account_id, uc.secret_key, uc.updated_at").
		From(credentialsTable).
		Where(squirrel.NotEq{"uc.account_id": ""}).
		Where(squirrel.NotEq{"uc.secret_key": ""}).
		OrderBy("uc.user_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	credentials := make([]*domain.UserCredential, 0)
	for rows.Next() {
		credential, err := r.scanCredential(rows)
		if err != nil {
			// Uma credencial ilegível não pode impedir a sincronização dos demais
			logrus.WithError(err).Error("Erro ao ler credencial, usuário ignorado")
			continue
		}
		credentials = append(credentials, credential)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return credentials, nil
}

func (r *credentialRepository) SaveOrUpdate(ctx context.Context, credential *domain.UserCredential) error {
	encrypted, err := r.box.Seal(credential.Credential.SecretKey)
	if err != nil {
		return fmt.Errorf("erro ao cifrar a chave secreta: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("user_credentials").
		Columns("user_id", "account_id", "secret_key").
		Values(credential.UserID, credential.Credential.AccountID, encrypted).
		Suffix(`
			ON CONFLICT (user_id) DO UPDATE SET
				account_id = EXCLUDED.account_id,
				secret_key = EXCLUDED.secret_key,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *credentialRepository) scanCredential(row scanner) (*domain.UserCredential, error) {
	credential := &domain.UserCredential{}
	var encrypted string

	if err := row.Scan(
		&credential.UserID,
		&credential.Credential.AccountID,
		&encrypted,
		&credential.UpdatedAt,
	); err != nil {
		return nil, err
	}

	secretKey, err := r.box.Open(encrypted)
	if err != nil {
		return nil, fmt.Errorf("erro ao decifrar a chave do usuário %s: %w", credential.UserID, err)
	}
	credential.Credential.SecretKey = secretKey

	return credential, nil
}
