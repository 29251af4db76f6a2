package pricing

import (
	"encoding/json"
	"testing"
)

func TestParseOfferRef(t *testing.T) {
	ref, err := ParseOfferRef("/offers/v1.0/aws/AmazonEC2/20240312153724/ap-northeast-1/index.json")
	if err != nil {
		t.Fatalf("ParseOfferRef failed: %v", err)
	}

	want := OfferRef{
		ServiceCode:  "AmazonEC2",
		OfferVersion: "20240312153724",
		Region:       "ap-northeast-1",
		Filename:     "index.json",
	}
	if ref != want {
		t.Fatalf("ParseOfferRef = %+v, want %+v", ref, want)
	}
	if got := ref.Path(); got != "offers/v1.0/aws/AmazonEC2/20240312153724/ap-northeast-1/index.json" {
		t.Fatalf("Path = %q", got)
	}
	if got := ref.Tag(); got != "ap-northeast-1-AmazonEC2-20240312153724" {
		t.Fatalf("Tag = %q", got)
	}
}

func TestParseOfferRefRejectsMalformedPaths(t *testing.T) {
	paths := []string{
		"",
		"offers/v1.0/aws/AmazonEC2/v1/us-east-1/index.json", // missing leading slash
		"/offers/v2.0/aws/AmazonEC2/v1/us-east-1/index.json",
		"/offers/v1.0/aws/AmazonEC2/us-east-1/index.json", // too few segments
	}
	for _, path := range paths {
		if _, err := ParseOfferRef(path); err == nil {
			t.Errorf("ParseOfferRef(%q) succeeded, want error", path)
		}
	}
}

func TestOfferRefJSONRoundTrip(t *testing.T) {
	ref := OfferRef{
		ServiceCode:  "AmazonEC2",
		OfferVersion: "20240312153724",
		Region:       "us-east-1",
		Filename:     "index.json",
	}

	data, err := json.Marshal(ref)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"/offers/v1.0/aws/AmazonEC2/20240312153724/us-east-1/index.json"` {
		t.Fatalf("Marshal = %s", data)
	}

	var back OfferRef
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back != ref {
		t.Fatalf("round trip changed the ref: %+v vs %+v", back, ref)
	}
}

func TestSavingsPlanRefJSONRoundTrip(t *testing.T) {
	ref := SavingsPlanRef{
		ServiceCode:  "AWSComputeSavingsPlan",
		OfferVersion: "20240312234047",
		Region:       "ap-northeast-1",
		Filename:     "index.json",
	}
	if got := ref.Path(); got != "savingsPlan/v1.0/aws/AWSComputeSavingsPlan/20240312234047/ap-northeast-1/index.json" {
		t.Fatalf("Path = %q", got)
	}

	data, err := json.Marshal(ref)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back SavingsPlanRef
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back != ref {
		t.Fatalf("round trip changed the ref: %+v vs %+v", back, ref)
	}
}

func TestRegionIndexEntryDecodesCurrentVersionURL(t *testing.T) {
	payload := `{
		"regionCode": "us-east-1",
		"currentVersionUrl": "/offers/v1.0/aws/AmazonEC2/20240312153724/us-east-1/index.json"
	}`

	var entry RegionIndexEntry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if entry.CurrentVersionURL.Region != "us-east-1" || entry.CurrentVersionURL.ServiceCode != "AmazonEC2" {
		t.Fatalf("decoded ref = %+v", entry.CurrentVersionURL)
	}
}
