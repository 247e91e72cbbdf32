package formula

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airformula/internal/testutil"
)

func TestCompose_UserValidation(t *testing.T) {
	name := NewTextField("Name")
	email := NewTextField("Email")
	age := NewNumberField("Age")
	active := NewBooleanField("Active")

	validation := And(
		name.IsNotEmpty(),
		email.RegexMatch(`^[^@]+@[^@]+\.[^@]+$`),
		age.GreaterThanOrEquals(Int(18)),
		active.IsTrue(),
	)

	got := If(validation).Then("Valid User").Else("Invalid User")
	want := `IF(AND({Name},REGEX_MATCH({Email}, "^[^@]+@[^@]+\.[^@]+$"),{Age}>=18,{Active}=TRUE()), Valid User, Invalid User)`
	assert.Equal(t, want, got)
}

func TestCompose_ProjectStatus(t *testing.T) {
	start := NewDateField("Start Date")
	end := NewDateField("End Date")
	documents := NewAttachmentField("Documents")
	status := NewTextField("Status")

	ready := And(
		start.IsNotEmpty(),
		end.IsOnOrAfter().DaysAgo(-30),
		documents.IsNotEmpty(),
		status.Equals("Approved"),
	)

	got := If(ready).Then("Ready to Launch").Else("Not Ready")
	want := `IF(AND({Start Date},DATETIME_DIFF(NOW(), {End Date}, 'days')>=-30,LEN({Documents})>0,{Status}="Approved"), Ready to Launch, Not Ready)`
	assert.Equal(t, want, got)
}

func TestCompose_HardToSeeWarning(t *testing.T) {
	labCode := NewTextField("Lab Code")
	jobFlags := NewTextField("Job Flags")

	got := If(And(
		labCode.Equals("063"),
		jobFlags.Contains("Map Hard to See", NoTrim()),
	)).Then("Warning: Hard to See - Scout!", AsString()).Else("")

	want := `IF(AND({Lab Code}="063",FIND(LOWER("Map Hard to See"), LOWER({Job Flags}))>0), "Warning: Hard to See - Scout!", )`
	assert.Equal(t, want, got)
}

func TestCompose_DeepNesting(t *testing.T) {
	score := NewNumberField("Score")

	// Grade ladder: each level embeds the previous one as its else branch.
	ladder := `"F"`
	for _, step := range []struct {
		min   int64
		grade string
	}{{60, "D"}, {70, "C"}, {80, "B"}, {90, "A"}} {
		ladder = If(score.GreaterThanOrEquals(Int(step.min))).Then(step.grade, AsString()).Else(ladder)
	}

	want := `IF({Score}>=90, "A", IF({Score}>=80, "B", IF({Score}>=70, "C", IF({Score}>=60, "D", "F"))))`
	assert.Equal(t, want, ladder)
	assert.Equal(t, strings.Count(ladder, "("), strings.Count(ladder, ")"))
}

func TestCompose_Golden(t *testing.T) {
	table := testutil.ParseTable{
		"start of quarter": time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	name := NewTextField("Product Name")
	price := NewNumberField("Price")
	categories := NewTextListField("Categories")
	inStock := NewBooleanField("In Stock")
	images := NewAttachmentField("Images")
	listed := NewDateField("Listed", WithParser(table))

	listedThisQuarter, err := listed.IsOnOrBefore().OnDate(Phrase("start of quarter"))
	require.NoError(t, err)

	filter := And(
		name.Contains("laptop"),
		price.LessThan(Int(2000)),
		categories.ContainsAny([]string{"Electronics", "Computers"}),
		inStock.IsTrue(),
		images.IsNotEmpty(),
		Or(listedThisQuarter, Not(listed.IsOn().DaysAgo(0))),
		Not(IDEquals("recHIDDEN")),
	)
	label := If(filter).
		Then(If(price.LessThan(Int(500))).Then("Budget", AsString()).Else("Premium", AsString())).
		Else("Hidden", AsString())

	testutil.AssertGolden(t, "product_label", []byte(label+"\n"))
}

func TestCompose_ConcurrentSharedFields(t *testing.T) {
	status := NewTextField("Status")
	tags := NewTextListField("Tags")
	want := If(Or(status.Contains("open"), tags.ContainsAll([]string{"a", "b"}))).Then("1").Else("0")

	var wg sync.WaitGroup
	results := make([]string, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = If(Or(status.Contains("open"), tags.ContainsAll([]string{"a", "b"}))).Then("1").Else("0")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
