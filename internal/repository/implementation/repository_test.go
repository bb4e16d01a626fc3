package implementation_test

import (
	"context"
	"sync"
	"testing"

	"agrisense-be/internal/entity"
	"agrisense-be/internal/pkg/testdb"
	"agrisense-be/internal/repository/contract"
	"agrisense-be/internal/repository/implementation"
	"agrisense-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := testdb.New(t)
	repo := implementation.NewUserRepository(db)
	ctx := context.Background()

	first := &entity.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "h", Language: entity.LanguageEnglish}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.Id)

	dup := &entity.User{Name: "Asha 2", Email: "asha@example.com", PasswordHash: "h", Language: entity.LanguageEnglish}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, contract.ErrDuplicate)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUserRepositoryUpdateProfileBumpsVersion(t *testing.T) {
	db := testdb.New(t)
	repo := implementation.NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{Name: "Gurpreet", Email: "g@example.com", PasswordHash: "h", Language: entity.LanguagePunjabi}
	require.NoError(t, repo.Create(ctx, user))

	ok, err := repo.UpdateProfile(ctx, user.Id, "Ludhiana, Punjab", []string{"Wheat", "Rice"}, entity.FarmDetails{
		LandSize:    "5 acres",
		FarmingType: entity.FarmingTypeOrganic,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := repo.FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Ludhiana, Punjab", stored.Location)
	assert.Equal(t, []string{"Wheat", "Rice"}, stored.Crops)
	assert.Equal(t, "5 acres", stored.FarmDetails.LandSize)
	assert.Equal(t, entity.FarmingTypeOrganic, stored.FarmDetails.FarmingType)
	assert.Equal(t, 1, stored.Version)

	ok, err = repo.UpdateProfile(ctx, uuid.New(), "", nil, entity.FarmDetails{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepositoryFindByEmailIsCaseInsensitive(t *testing.T) {
	db := testdb.New(t)
	repo := implementation.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{Name: "R", Email: "ravi@example.com", PasswordHash: "h", Language: entity.LanguageHindi}))

	found, err := repo.FindOne(ctx, specification.ByEmail{Email: " Ravi@Example.com "})
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := repo.FindOne(ctx, specification.ByEmail{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCropHistoryRepositoryOrderAndOwnership(t *testing.T) {
	db := testdb.New(t)
	repo := implementation.NewCropHistoryRepository(db)
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()

	for _, crop := range []string{"Wheat", "Mustard", "Cotton"} {
		require.NoError(t, repo.Create(ctx, &entity.CropHistoryRecord{UserId: owner, CropName: crop, Year: 2024}))
	}

	history, err := repo.FindAll(ctx, specification.UserOwnedBy{UserID: owner}, specification.InsertionOrder{})
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "Wheat", history[0].CropName)
	assert.Equal(t, "Cotton", history[2].CropName)

	// Strangers cannot delete someone else's record.
	require.NoError(t, repo.DeleteOwned(ctx, stranger, history[1].Id))
	history, err = repo.FindAll(ctx, specification.UserOwnedBy{UserID: owner})
	require.NoError(t, err)
	assert.Len(t, history, 3)

	require.NoError(t, repo.DeleteOwned(ctx, owner, history[1].Id))
	require.NoError(t, repo.DeleteOwned(ctx, owner, uuid.New()))
	history, err = repo.FindAll(ctx, specification.UserOwnedBy{UserID: owner}, specification.InsertionOrder{})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, []string{"Wheat", "Cotton"}, []string{history[0].CropName, history[1].CropName})
}

func TestFarmerRepositoryDuplicatePhone(t *testing.T) {
	db := testdb.New(t)
	repo := implementation.NewFarmerRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Farmer{Name: "Kiran", Phone: "9876543210", Language: "en"}))
	err := repo.Create(ctx, &entity.Farmer{Name: "Other", Phone: "9876543210", Language: "hi"})
	assert.ErrorIs(t, err, contract.ErrDuplicate)

	found, err := repo.FindOne(ctx, specification.ByPhone{Phone: "9876543210"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Kiran", found.Name)
}

func TestChatSessionEnsureIsIdempotent(t *testing.T) {
	db := testdb.New(t)
	repo := implementation.NewChatSessionRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	var wg sync.WaitGroup
	ids := make([]uuid.UUID, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session, err := repo.Ensure(ctx, userID)
			if assert.NoError(t, err) {
				ids[i] = session.Id
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestChatMessagesKeepInsertionOrder(t *testing.T) {
	db := testdb.New(t)
	sessions := implementation.NewChatSessionRepository(db)
	messages := implementation.NewChatMessageRepository(db)
	ctx := context.Background()

	session, err := sessions.Ensure(ctx, uuid.New())
	require.NoError(t, err)

	contents := []string{"q1", "a1", "q2", "a2"}
	for i, c := range contents {
		role := entity.ChatRoleUser
		if i%2 == 1 {
			role = entity.ChatRoleAssistant
		}
		require.NoError(t, messages.Create(ctx, &entity.ChatMessage{ChatSessionId: session.Id, Role: role, Content: c}))
	}

	stored, err := messages.FindAll(ctx, specification.ByChatSessionID{ChatSessionID: session.Id}, specification.InsertionOrder{})
	require.NoError(t, err)
	require.Len(t, stored, 4)
	for i, msg := range stored {
		assert.Equal(t, contents[i], msg.Content)
		if i > 0 {
			assert.Greater(t, msg.Sequence, stored[i-1].Sequence)
		}
	}
	assert.Equal(t, entity.ChatRoleAssistant, stored[3].Role)

	count, err := messages.Count(ctx, specification.ByChatSessionID{ChatSessionID: session.Id})
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}
