package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role y la sede asignada (BranchID o WarehouseID) permiten que el middleware RBAC
// y los casos de uso tomen decisiones de alcance sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"user_id"`
	CompanyID   string `json:"company_id"`
	Role        string `json:"role"` // "admin" | "bodeguero" | "cajero"
	BranchID    string `json:"branch_id,omitempty"`
	WarehouseID string `json:"warehouse_id,omitempty"`
}

// Payload datos de aplicación que viajan dentro del token.
type Payload struct {
	UserID      string
	CompanyID   string
	Role        string
	BranchID    string
	WarehouseID string
}

// Generate genera un token JWT firmado con los datos del usuario y su sede asignada.
func Generate(secret string, p Payload, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:      p.UserID,
		CompanyID:   p.CompanyID,
		Role:        p.Role,
		BranchID:    p.BranchID,
		WarehouseID: p.WarehouseID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve el payload de aplicación.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Payload, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Payload{
		UserID:      claims.UserID,
		CompanyID:   claims.CompanyID,
		Role:        claims.Role,
		BranchID:    claims.BranchID,
		WarehouseID: claims.WarehouseID,
	}, nil
}
