package mock

import (
	context "context"
	reflect "reflect"

	snowflake "github.com/disgoorg/snowflake/v2"
	models "github.com/guildforge/ledgerbot/ledgerbot/database/models"
	economy "github.com/guildforge/ledgerbot/ledgerbot/economy"
	gomock "go.uber.org/mock/gomock"
)

// MockRepository is a mock of Repository interface.
type MockRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRepositoryMockRecorder
	isgomock struct{}
}

// MockRepositoryMockRecorder is the mock recorder for MockRepository.
type MockRepositoryMockRecorder struct {
	mock *MockRepository
}

// NewMockRepository creates a new mock instance.
func NewMockRepository(ctrl *gomock.Controller) *MockRepository {
	mock := &MockRepository{ctrl: ctrl}
	mock.recorder = &MockRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRepository) EXPECT() *MockRepositoryMockRecorder {
	return m.recorder
}

// EnsureGuild mocks base method.
func (m *MockRepository) EnsureGuild(ctx context.Context, guildID snowflake.ID, name string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EnsureGuild", ctx, guildID, name)
	ret0, _ := ret[0].(error)
	return ret0
}

// EnsureGuild indicates an expected call of EnsureGuild.
func (mr *MockRepositoryMockRecorder) EnsureGuild(ctx, guildID, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnsureGuild", reflect.TypeOf((*MockRepository)(nil).EnsureGuild), ctx, guildID, name)
}

// EnsureMember mocks base method.
func (m *MockRepository) EnsureMember(ctx context.Context, memberID snowflake.ID, username string, displayName string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EnsureMember", ctx, memberID, username, displayName)
	ret0, _ := ret[0].(error)
	return ret0
}

// EnsureMember indicates an expected call of EnsureMember.
func (mr *MockRepositoryMockRecorder) EnsureMember(ctx, memberID, username, displayName any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnsureMember", reflect.TypeOf((*MockRepository)(nil).EnsureMember), ctx, memberID, username, displayName)
}

// FindMaterial mocks base method.
func (m *MockRepository) FindMaterial(ctx context.Context, name string) (*models.Material, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindMaterial", ctx, name)
	ret0, _ := ret[0].(*models.Material)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindMaterial indicates an expected call of FindMaterial.
func (mr *MockRepositoryMockRecorder) FindMaterial(ctx, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindMaterial", reflect.TypeOf((*MockRepository)(nil).FindMaterial), ctx, name)
}

// GuildSummary mocks base method.
func (m *MockRepository) GuildSummary(ctx context.Context, guildID snowflake.ID) ([]models.MaterialTotal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GuildSummary", ctx, guildID)
	ret0, _ := ret[0].([]models.MaterialTotal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GuildSummary indicates an expected call of GuildSummary.
func (mr *MockRepositoryMockRecorder) GuildSummary(ctx, guildID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GuildSummary", reflect.TypeOf((*MockRepository)(nil).GuildSummary), ctx, guildID)
}

// ListMaterials mocks base method.
func (m *MockRepository) ListMaterials(ctx context.Context) ([]models.Material, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMaterials", ctx)
	ret0, _ := ret[0].([]models.Material)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListMaterials indicates an expected call of ListMaterials.
func (mr *MockRepositoryMockRecorder) ListMaterials(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMaterials", reflect.TypeOf((*MockRepository)(nil).ListMaterials), ctx)
}

// MemberContributions mocks base method.
func (m *MockRepository) MemberContributions(ctx context.Context, guildID snowflake.ID, memberID snowflake.ID) ([]models.MemberContribution, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MemberContributions", ctx, guildID, memberID)
	ret0, _ := ret[0].([]models.MemberContribution)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MemberContributions indicates an expected call of MemberContributions.
func (mr *MockRepositoryMockRecorder) MemberContributions(ctx, guildID, memberID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MemberContributions", reflect.TypeOf((*MockRepository)(nil).MemberContributions), ctx, guildID, memberID)
}

// MemberPoints mocks base method.
func (m *MockRepository) MemberPoints(ctx context.Context, guildID snowflake.ID, memberID snowflake.ID) (economy.Points, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MemberPoints", ctx, guildID, memberID)
	ret0, _ := ret[0].(economy.Points)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MemberPoints indicates an expected call of MemberPoints.
func (mr *MockRepositoryMockRecorder) MemberPoints(ctx, guildID, memberID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MemberPoints", reflect.TypeOf((*MockRepository)(nil).MemberPoints), ctx, guildID, memberID)
}

// RecordContribution mocks base method.
func (m *MockRepository) RecordContribution(ctx context.Context, guildID snowflake.ID, memberID snowflake.ID, materialName string, amount int64) (*models.Contribution, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecordContribution", ctx, guildID, memberID, materialName, amount)
	ret0, _ := ret[0].(*models.Contribution)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RecordContribution indicates an expected call of RecordContribution.
func (mr *MockRepositoryMockRecorder) RecordContribution(ctx, guildID, memberID, materialName, amount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordContribution", reflect.TypeOf((*MockRepository)(nil).RecordContribution), ctx, guildID, memberID, materialName, amount)
}

// TopContributors mocks base method.
func (m *MockRepository) TopContributors(ctx context.Context, guildID snowflake.ID, limit int) ([]models.ContributorTotal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TopContributors", ctx, guildID, limit)
	ret0, _ := ret[0].([]models.ContributorTotal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TopContributors indicates an expected call of TopContributors.
func (mr *MockRepositoryMockRecorder) TopContributors(ctx, guildID, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TopContributors", reflect.TypeOf((*MockRepository)(nil).TopContributors), ctx, guildID, limit)
}
