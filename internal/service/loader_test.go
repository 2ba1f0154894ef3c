package service

import (
	"context"
	"errors"
	"testing"

	"CreditScoreZ/internal/ledger"
	"CreditScoreZ/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRefresh_SkipsFailedRecordsAndKeepsOrder(t *testing.T) {
	f := newFixture(t)
	f.connect(t, []string{}, nil)

	ids := []string{"score-1", "score-2", "score-3", "score-4", "score-5"}
	f.reader.On("GetAllBusinessIds", mock.Anything).Return(ids, nil).Once()
	for _, id := range ids {
		if id == "score-3" {
			f.reader.On("GetBusinessData", mock.Anything, id).Return(ledger.BusinessData{}, errors.New("rpc timeout")).Once()
			continue
		}
		f.reader.On("GetBusinessData", mock.Anything, id).Return(ledger.BusinessData{Name: "n-" + id}, nil).Once()
	}

	require.NoError(t, f.d.Refresh(context.Background()))
	s := f.d.State()
	require.Len(t, s.Records, 4)
	got := make([]string, 0, len(s.Records))
	for _, r := range s.Records {
		got = append(got, r.ID)
	}
	assert.Equal(t, []string{"score-1", "score-2", "score-4", "score-5"}, got)
	assert.False(t, s.Refreshing)
}

func TestRefresh_ListingFailure(t *testing.T) {
	f := newFixture(t)
	f.fhe.On("Initialize", mock.Anything).Return(nil).Once()
	f.reader.On("GetAllBusinessIds", mock.Anything).Return(nil, errors.New("node unavailable")).Once()

	// первая загрузка падает: список пустой, загрузка завершена, connect всё равно успешен
	require.NoError(t, f.d.Connect(context.Background()))
	s := f.d.State()
	assert.NotNil(t, s.Records)
	assert.Empty(t, s.Records)
	assert.False(t, s.Loading)
	assert.Equal(t, "Failed to load data", f.d.TxStatus().Message)

	f.expectLoad([]string{"score-1"}, map[string]ledger.BusinessData{"score-1": {Name: "A"}})
	require.NoError(t, f.d.Refresh(context.Background()))

	// последующая ошибка сохраняет прежний список
	f.reader.On("GetAllBusinessIds", mock.Anything).Return(nil, errors.New("node unavailable")).Once()
	require.Error(t, f.d.Refresh(context.Background()))
	s = f.d.State()
	require.Len(t, s.Records, 1)
	assert.Equal(t, model.PhaseError, f.d.TxStatus().Phase)
}

func TestDashboard_EmptyLedger(t *testing.T) {
	f := newFixture(t)
	f.connect(t, []string{}, nil)

	v, err := f.d.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Stats.Total)
	assert.Equal(t, 0, v.Stats.Verified)
	assert.Equal(t, 0.0, v.Stats.AverageScore)
	assert.Equal(t, 0, v.Stats.HighScores)
	assert.NotNil(t, v.RecentHistory)
	assert.Len(t, v.Flow, 4)

	p, err := f.d.Profiles()
	require.NoError(t, err)
	assert.NotNil(t, p.Records)
	assert.Empty(t, p.Records)
}

func TestProfiles_Search(t *testing.T) {
	f := newFixture(t)
	f.connect(t, []string{"score-1", "score-2"}, map[string]ledger.BusinessData{
		"score-1": {Name: "Alice Corp", Creator: testAccount},
		"score-2": {Name: "Bob Ltd", Creator: "0x9999999999999999999999999999999999999999"},
	})

	require.NoError(t, f.d.SetSearch("alice"))
	p, err := f.d.Profiles()
	require.NoError(t, err)
	require.Len(t, p.Records, 1)
	assert.Equal(t, "score-1", p.Records[0].ID)

	require.NoError(t, f.d.SetSearch("0x9999"))
	p, err = f.d.Profiles()
	require.NoError(t, err)
	require.Len(t, p.Records, 1)
	assert.Equal(t, "score-2", p.Records[0].ID)
}

func TestFetchAll_ContextCanceled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	f.reader.On("GetAllBusinessIds", mock.Anything).Return([]string{"score-1"}, nil).Once()
	f.reader.On("GetBusinessData", mock.Anything, "score-1").
		Run(func(mock.Arguments) { cancel() }).
		Return(ledger.BusinessData{}, context.Canceled).Once()

	_, err := f.d.fetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
