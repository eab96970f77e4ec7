package repository

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func isConditionalCheckFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

// updateExpression accumulates SET and REMOVE clauses for UpdateItem. Every
// attribute gets a #name placeholder so reserved words need no special care.
type updateExpression struct {
	sets    []string
	removes []string
	names   map[string]string
	values  map[string]types.AttributeValue
}

func newUpdateExpression() *updateExpression {
	return &updateExpression{
		names:  map[string]string{},
		values: map[string]types.AttributeValue{},
	}
}

func (u *updateExpression) set(attr string, v types.AttributeValue) {
	name, value := "#"+attr, ":"+attr
	u.names[name] = attr
	u.values[value] = v
	u.sets = append(u.sets, name+" = "+value)
}

func (u *updateExpression) setString(attr, v string) {
	u.set(attr, &types.AttributeValueMemberS{Value: v})
}

func (u *updateExpression) remove(attr string) {
	name := "#" + attr
	u.names[name] = attr
	u.removes = append(u.removes, name)
}

func (u *updateExpression) String() string {
	var b strings.Builder
	if len(u.sets) > 0 {
		b.WriteString("SET ")
		b.WriteString(strings.Join(u.sets, ", "))
	}
	if len(u.removes) > 0 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("REMOVE ")
		b.WriteString(strings.Join(u.removes, ", "))
	}
	return b.String()
}
