package repositories

import (
	"chat-rooms/domain"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Record_Outcomes_Newest_First(t *testing.T) {
	req := require.New(t)
	repository := NewOutcomeRepository(openDB(t), slog.Default())
	at := time.Now().UTC()

	outcomes := []DiskOutcome{
		{ID: uuid.New(), Room: "team-standup", Name: "team-standup", Action: domain.ActionJoin.String(), At: at},
		{ID: uuid.New(), Room: "team-standup", Name: "team-standup", Action: domain.ActionLeave.String(), At: at.Add(time.Minute)},
		{ID: uuid.New(), Room: "team-standup", Name: "team-standup", Action: domain.ActionJoin.String(),
			Reason: domain.ReasonSubscriptionAlreadyExists.String(), Error: "already joined", Reported: true, At: at.Add(2 * time.Minute)},
		{ID: uuid.New(), Room: "random", Name: "random", Action: domain.ActionJoin.String(), At: at},
	}
	for _, o := range outcomes {
		req.NoError(repository.Store(o))
	}

	fetched, err := repository.Last("team-standup", 0)
	req.NoError(err)
	req.Len(fetched, 3)
	req.Equal(outcomes[2].ID, fetched[0].ID)
	req.True(fetched[0].Reported)
	req.Equal("already joined", fetched[0].Error)
	req.Equal(outcomes[0].ID, fetched[2].ID)
}

func Test_Record_Outcomes_And_Limit(t *testing.T) {
	req := require.New(t)
	repository := NewOutcomeRepository(openDB(t), slog.Default())
	at := time.Now().UTC()

	for i := 0; i < 3; i++ {
		req.NoError(repository.Store(DiskOutcome{ID: uuid.New(), Room: "team-standup", At: at.Add(time.Duration(i) * time.Second)}))
	}

	fetched, err := repository.Last("team-standup", 2)
	req.NoError(err)
	req.Len(fetched, 2)
	req.True(fetched[0].At.After(fetched[1].At))
}

func Test_Record_Outcomes_Stay_In_Their_Room(t *testing.T) {
	req := require.New(t)
	repository := NewOutcomeRepository(openDB(t), slog.Default())
	at := time.Now().UTC()

	// Given a room whose id starts with another room's id followed by ':'
	team := DiskOutcome{ID: uuid.New(), Room: "team", Name: "team", Action: domain.ActionJoin.String(), At: at}
	nested := DiskOutcome{ID: uuid.New(), Room: "team:1", Name: "team:1", Action: domain.ActionJoin.String(), At: at}
	req.NoError(repository.Store(team))
	req.NoError(repository.Store(nested))

	fetched, err := repository.Last("team", 0)
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal(team.ID, fetched[0].ID)

	fetched, err = repository.Last("team:1", 0)
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal(domain.RoomID("team:1"), fetched[0].Room)
}
