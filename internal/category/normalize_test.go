package category

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want Key
	}{
		{"Điều hòa", "dieu_hoa"},
		{"Dieu hoa", "dieu_hoa"},
		{"dieu_hoa", "dieu_hoa"},
		{"Máy lọc không khí", "may_loc_khong_khi"},
		{"  Tủ   lạnh ", "tu_lanh"},
		{"Tivi", "tivi"},
		{"TV", "tv"},
		{"Nồi chiên\tkhông dầu", "noi_chien_khong_dau"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Điều hòa", "Máy rửa bát", "Cà phê hạt", "Đồng hồ treo tường", "Ghế  sofa", "already_normal"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(string(once)); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_AccentedAndPlainCollapse(t *testing.T) {
	if Normalize("Điều hòa") != Normalize("Dieu hoa") {
		t.Fatalf("accented and unaccented spellings should share a key")
	}
}
