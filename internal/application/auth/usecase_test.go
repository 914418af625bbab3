package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmarin/posflow-api/internal/application/auth"
	"github.com/nmarin/posflow-api/internal/application/dto"
	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/pkg/jwt"
)

const testCompany = "comp-acme"

type memUserRepo struct {
	users map[string]*entity.User // por ID
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.CompanyID == companyID {
			return u, nil
		}
	}
	return nil, nil
}

type memCompanyRepo struct{}

func (memCompanyRepo) Create(*entity.Company) error { return nil }
func (memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if id != testCompany {
		return nil, nil
	}
	return &entity.Company{ID: id, Name: "Acme"}, nil
}
func (memCompanyRepo) List(int, int) ([]*entity.Company, error) { return nil, nil }

func newAuthUseCase() (*auth.AuthUseCase, *memUserRepo) {
	users := &memUserRepo{users: make(map[string]*entity.User)}
	uc := auth.NewAuthUseCase(users, memCompanyRepo{}, auth.JWTConfig{
		Secret:     "secreto-de-pruebas",
		ExpMinutes: 15,
		Issuer:     "posflow-test",
	})
	return uc, users
}

func register(t *testing.T, uc *auth.AuthUseCase, role, branchID, warehouseID string) *dto.UserResponse {
	t.Helper()
	out, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID:   testCompany,
		Email:       role + "@acme.test",
		Password:    "s3creta!",
		Name:        "Usuario " + role,
		Role:        role,
		BranchID:    branchID,
		WarehouseID: warehouseID,
	})
	require.NoError(t, err)
	return out
}

func TestRegistrar_RolesConSedeObligatoria(t *testing.T) {
	uc, _ := newAuthUseCase()

	// Cajero sin sucursal y bodeguero sin bodega se rechazan.
	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: testCompany, Email: "c@acme.test", Password: "x", Role: entity.RoleCajero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(dto.RegisterRequest{
		CompanyID: testCompany, Email: "b@acme.test", Password: "x", Role: entity.RoleBodeguero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Con su sede asignada pasan; admin no necesita sede.
	cajero := register(t, uc, entity.RoleCajero, "br-1", "")
	assert.Equal(t, "br-1", cajero.BranchID)
	bodeguero := register(t, uc, entity.RoleBodeguero, "", "wh-1")
	assert.Equal(t, "wh-1", bodeguero.WarehouseID)
	admin := register(t, uc, entity.RoleAdmin, "", "")
	assert.Equal(t, entity.RoleAdmin, admin.Role)
}

func TestRegistrar_RolDesconocido(t *testing.T) {
	uc, _ := newAuthUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: testCompany, Email: "x@acme.test", Password: "x", Role: "gerente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrar_EmailDuplicadoEnLaEmpresa(t *testing.T) {
	uc, _ := newAuthUseCase()
	register(t, uc, entity.RoleAdmin, "", "")

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: testCompany, Email: "admin@acme.test", Password: "x", Role: entity.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegistrar_EmpresaInexistente(t *testing.T) {
	uc, _ := newAuthUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: "comp-fantasma", Email: "x@acme.test", Password: "x", Role: entity.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrar_NoExponeElHash(t *testing.T) {
	uc, users := newAuthUseCase()
	out := register(t, uc, entity.RoleAdmin, "", "")

	stored := users.users[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3creta!", stored.PasswordHash, "el password nunca se guarda plano")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestLogin_TokenConClaimsDeSede(t *testing.T) {
	uc, _ := newAuthUseCase()
	register(t, uc, entity.RoleBodeguero, "", "wh-1")

	out, err := uc.Login(dto.LoginRequest{Email: "bodeguero@acme.test", Password: "s3creta!"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleBodeguero, out.User.Role)

	payload, err := jwt.Parse("secreto-de-pruebas", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, payload.UserID)
	assert.Equal(t, testCompany, payload.CompanyID)
	assert.Equal(t, entity.RoleBodeguero, payload.Role)
	assert.Equal(t, "wh-1", payload.WarehouseID)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newAuthUseCase()
	register(t, uc, entity.RoleAdmin, "", "")

	_, err := uc.Login(dto.LoginRequest{Email: "admin@acme.test", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuthUseCase()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@acme.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users := newAuthUseCase()
	out := register(t, uc, entity.RoleAdmin, "", "")
	users.users[out.ID].Status = "suspended"

	_, err := uc.Login(dto.LoginRequest{Email: "admin@acme.test", Password: "s3creta!"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
