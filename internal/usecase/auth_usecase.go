package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, name string, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type UserDTO struct {
	ID    int64
	Name  string
	Email string
}

// AuthUsecase は会員登録・ログインの処理。
// パスワードは必ずハッシュ化して保存する（平文保存しない）。
type AuthUsecase struct {
	users     repository.UserRepository
	hasher    PasswordHasher
	verifier  PasswordVerifier
	validator AuthValidator
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		hasher:    hasher,
		verifier:  verifier,
		validator: validator,
	}
}

// 会員登録実行
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserDTO, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in.Name, in.Email, in.Password); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// name/email重複チェック
	if existing, err := u.users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return UserDTO{}, NewHTTPError(http.StatusConflict, "email already used")
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing, err := u.users.FindByName(ctx, in.Name); err == nil && existing != nil {
		return UserDTO{}, NewHTTPError(http.StatusConflict, "name already used")
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	pwHash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: pwHash,
	}

	//保存（同時登録でunique違反ならconflict扱い）
	if err := u.users.Create(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusConflict, "already used")
	}

	return toUserDTO(user), nil
}

// ログイン実行。emailとパスワードを照合する。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (UserDTO, error) {
	if err := u.validator.ValidateLogin(ctx, in.Email, in.Password); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil || user == nil {
		//emailの存在は明かさない
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	return toUserDTO(user), nil
}

// セッションから復元したIDでユーザーを引く
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return toUserDTO(user), nil
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
