package applicationapimodels

import (
	"testing"

	"recruitment-tracker-backend/models"

	"github.com/stretchr/testify/require"
)

func TestTransitionRequest(t *testing.T) {
	t.Run(`Parse check`, func(t *testing.T) {
		score := 85
		request := TransitionRequest{
			TargetStage: "psych_test",
			OutcomeCode: "passed",
			Score:       &score,
			ReviewerID:  "7",
		}
		stage, code, payload, err := request.Parse()
		require.Nil(t, err)
		require.Equal(t, models.StagePsychTest, stage)
		require.Equal(t, models.StatusCodePassed, code)
		require.Equal(t, 85, *payload.Score)
		require.Equal(t, "7", payload.ReviewerID)
	})

	t.Run(`Parse invalid input check`, func(t *testing.T) {
		request := TransitionRequest{TargetStage: "secret_stage", OutcomeCode: "passed"}
		_, _, _, err := request.Parse()
		require.NotNil(t, err)

		request = TransitionRequest{TargetStage: "interview", OutcomeCode: "done"}
		_, _, _, err = request.Parse()
		require.NotNil(t, err)

		badScore := 146
		request = TransitionRequest{TargetStage: "interview", OutcomeCode: "passed", Score: &badScore}
		_, _, _, err = request.Parse()
		require.NotNil(t, err)
	})
}
