package audit

import (
	"context"
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestNewEvent(t *testing.T) {
	c := qt.New(t)
	a := NewEvent(ActionPaymentDone, "root@example.com", "c1", map[string]string{"amount": "50"})
	b := NewEvent(ActionPaymentDone, "root@example.com", "c1", nil)
	c.Assert(a.ID, qt.Not(qt.Equals), "")
	c.Assert(a.ID, qt.Not(qt.Equals), b.ID)
	c.Assert(a.At.IsZero(), qt.IsFalse)

	raw, err := json.Marshal(a)
	c.Assert(err, qt.IsNil)
	var decoded map[string]any
	c.Assert(json.Unmarshal(raw, &decoded), qt.IsNil)
	c.Assert(decoded["action"], qt.Equals, "collaboration.payment_done")
	c.Assert(decoded["targetId"], qt.Equals, "c1")
}

func TestKafkaPublisherConfig(t *testing.T) {
	c := qt.New(t)
	_, err := NewKafkaPublisher(nil, "console-audit")
	c.Assert(err, qt.IsNotNil)
	_, err = NewKafkaPublisher([]string{"localhost:9092"}, "")
	c.Assert(err, qt.IsNotNil)

	p, err := NewKafkaPublisher([]string{"localhost:9092"}, "console-audit")
	c.Assert(err, qt.IsNil)
	c.Assert(p.writer.Topic, qt.Equals, "console-audit")
	c.Assert(p.Close(), qt.IsNil)
}

func TestRecorder(t *testing.T) {
	c := qt.New(t)
	var r Recorder
	c.Assert(r.Publish(context.Background(), NewEvent(ActionVerifyBrand, "", "b1", nil)), qt.IsNil)
	c.Assert(Nop{}.Publish(context.Background(), Event{}), qt.IsNil)
	c.Assert(r.Events(), qt.HasLen, 1)
	c.Assert(r.Events()[0].Action, qt.Equals, ActionVerifyBrand)
}
