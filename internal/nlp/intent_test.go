package nlp

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want Intent
	}{
		{"remind me to buy milk tomorrow", IntentCreate},
		{"i need to call the dentist", IntentCreate},
		{"mark task 3 as done", IntentUpdate},
		{"change the grocery task to high priority", IntentUpdate},
		{"delete task 5", IntentDelete},
		{"what are my tasks", IntentList},
		{"search for urgent items", IntentFilter},
		{"hello there", IntentGeneral},
	}
	for _, c := range cases {
		if got := Classify(c.in); got != c.want {
			t.Fatalf("Classify(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

// "finish" and "complete" live in both the create and update keyword
// lists; create is checked first, so they always classify as create.
func TestClassifyCreateWinsOverUpdate(t *testing.T) {
	if got := Classify("finish the report"); got != IntentCreate {
		t.Fatalf("got %s", got)
	}
	if got := Classify("complete the essay by friday"); got != IntentCreate {
		t.Fatalf("got %s", got)
	}
}

func TestMentionsCreation(t *testing.T) {
	for _, in := range []string{
		"play chess with dad tomorrow",
		"eat healthier this week",
		"call grandma",
		"visit the museum",
	} {
		if !MentionsCreation(in) {
			t.Fatalf("MentionsCreation(%q) = false", in)
		}
	}
	if MentionsCreation("hello") {
		t.Fatalf("greeting should not look like a task")
	}
}
