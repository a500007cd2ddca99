package models

// DemographicsRequest is the body of POST /api/demographics. The knowledge
// map is keyed by topic name as the participant typed it; resolution against
// the topic catalog happens server-side.
type DemographicsRequest struct {
	Knowledge             map[string]int `json:"knowledge"`
	ParticipantID         int64          `json:"participantId" binding:"required"`
	BirthDate             string         `json:"birthDate" binding:"required"`
	Gender                string         `json:"gender" binding:"required"`
	Education             string         `json:"education" binding:"required"`
	NativeLanguage        string         `json:"nativeLanguage" binding:"required"`
	OtherLanguages        string         `json:"otherLanguages"`
	EnglishAcquisitionAge string         `json:"englishAcquisitionAge"`
	ReadingProficiency    int            `json:"readingProficiency"`
	ListeningProficiency  int            `json:"listeningProficiency"`
	SpeakingProficiency   int            `json:"speakingProficiency"`
	WritingProficiency    int            `json:"writingProficiency"`
	Ethnicity             string         `json:"ethnicity"`
}

// PartALogRequest is one self-paced reading event (word reveal)
type PartALogRequest struct {
	ParticipantID  int64  `json:"participantId" binding:"required"`
	SentenceID     int    `json:"sentenceId" binding:"required"`
	WordIndex      int    `json:"wordIndex"`
	Action         string `json:"action" binding:"required"`
	ReactionTimeMs *int   `json:"reactionTimeMs"`
}

// QuestionResponse is one answered question inside a batch submission
type QuestionResponse struct {
	QuestionID     int    `json:"questionId" binding:"required"`
	Response       string `json:"response" binding:"required"`
	IsCorrect      *bool  `json:"isCorrect"`
	ReactionTimeMs *int   `json:"reactionTimeMs"`
}

// SubmitQuestionsRequest is the batch body for Part A question submission
type SubmitQuestionsRequest struct {
	ParticipantID int64              `json:"participantId" binding:"required"`
	Phase         string             `json:"phase" binding:"required"`
	Responses     []QuestionResponse `json:"responses" binding:"required"`
}

// PartBActionRequest is one continue/switch/select decision
type PartBActionRequest struct {
	ParticipantID  int64  `json:"participantId" binding:"required"`
	StoryID        int    `json:"storyId" binding:"required"`
	SegmentID      *int   `json:"segmentId"`
	Action         string `json:"action" binding:"required"`
	ReactionTimeMs *int   `json:"reactionTimeMs"`
}

// PartBSubmitRequest carries the summary text and the comprehension answers
// for one story of Part B
type PartBSubmitRequest struct {
	ParticipantID int64              `json:"participantId" binding:"required"`
	Phase         string             `json:"phase" binding:"required"`
	StoryID       int                `json:"storyId" binding:"required"`
	Summary       string             `json:"summary"`
	Responses     []QuestionResponse `json:"responses"`
}

// PartCSubmitRequest carries the comprehension answers for one passage
type PartCSubmitRequest struct {
	ParticipantID int64              `json:"participantId" binding:"required"`
	Phase         string             `json:"phase" binding:"required"`
	PassageID     int                `json:"passageId" binding:"required"`
	Responses     []QuestionResponse `json:"responses"`
}

// VocabularyResponseRequest is one answered vocabulary item
type VocabularyResponseRequest struct {
	ParticipantID  int64  `json:"participantId" binding:"required"`
	ItemID         int    `json:"itemId" binding:"required"`
	Response       string `json:"response" binding:"required"`
	IsCorrect      *bool  `json:"isCorrect"`
	ReactionTimeMs *int   `json:"reactionTimeMs"`
}

// LetterComparisonRequest is one letter-comparison judgment. Resubmitting
// the same (participantId, sid, roundNumber, itemIndex) revises the stored
// row instead of appending a second one.
type LetterComparisonRequest struct {
	ParticipantID  int64  `json:"participantId" binding:"required"`
	SID            int    `json:"sid" binding:"required"`
	RoundNumber    int    `json:"roundNumber" binding:"required"`
	ItemIndex      int    `json:"itemIndex"`
	Response       string `json:"response" binding:"required"`
	IsCorrect      *bool  `json:"isCorrect"`
	ReactionTimeMs *int   `json:"reactionTimeMs"`
}

// AssessmentSubmitRequest is the batch body for the final assessment
type AssessmentSubmitRequest struct {
	ParticipantID int64              `json:"participantId" binding:"required"`
	Responses     []QuestionResponse `json:"responses" binding:"required"`
}
