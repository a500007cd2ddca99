package models

// Sentence is one self-paced reading item for Part A
type Sentence struct {
	SentenceID int    `json:"sentenceId"`
	ItemOrder  int    `json:"itemOrder"`
	Content    string `json:"content"`
}

// Question is one multiple-choice item. OptionC/OptionD may be empty for
// two-option items. Answer ships with the payload: correctness is graded
// client-side against this key.
type Question struct {
	QuestionID int    `json:"questionId"`
	ItemOrder  int    `json:"itemOrder"`
	Question   string `json:"question"`
	OptionA    string `json:"optionA"`
	OptionB    string `json:"optionB"`
	OptionC    string `json:"optionC,omitempty"`
	OptionD    string `json:"optionD,omitempty"`
	Answer     string `json:"answer"`
}

// Story is one foraging topic for Part B
type Story struct {
	StoryID int    `json:"storyId"`
	Title   string `json:"title"`
	TopicID *int   `json:"topicId,omitempty"`
}

// Segment is one reading unit of a story, ordered by SegmentOrder
type Segment struct {
	SegmentID    int    `json:"segmentId"`
	StoryID      int    `json:"storyId"`
	SegmentOrder int    `json:"segmentOrder"`
	Content      string `json:"content"`
}

// Passage is one reading unit for Part C, ordered by PassOrder
type Passage struct {
	PassageID int    `json:"passageId"`
	PassOrder int    `json:"passOrder"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// VocabularyItem is one item of the vocabulary test
type VocabularyItem struct {
	ItemID    int    `json:"itemId"`
	ItemOrder int    `json:"itemOrder"`
	Word      string `json:"word"`
	OptionA   string `json:"optionA"`
	OptionB   string `json:"optionB"`
	OptionC   string `json:"optionC,omitempty"`
	OptionD   string `json:"optionD,omitempty"`
	Answer    string `json:"answer"`
}

// LetterItem is one string pair of the letter-comparison test
type LetterItem struct {
	ItemID      int    `json:"itemId"`
	RoundNumber int    `json:"roundNumber"`
	ItemIndex   int    `json:"itemIndex"`
	LeftString  string `json:"leftString"`
	RightString string `json:"rightString"`
	Answer      string `json:"answer"`
}
