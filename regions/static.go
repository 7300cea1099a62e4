package regions

import "land_scrooper/models"

// provinces lists the top level of the hierarchy in display order.
var provinces = []models.Region{
	{Code: "1100000000", Name: "서울특별시", Type: models.RegionProvince},
	{Code: "2600000000", Name: "부산광역시", Type: models.RegionProvince},
	{Code: "2700000000", Name: "대구광역시", Type: models.RegionProvince},
	{Code: "2800000000", Name: "인천광역시", Type: models.RegionProvince},
	{Code: "2900000000", Name: "광주광역시", Type: models.RegionProvince},
	{Code: "3000000000", Name: "대전광역시", Type: models.RegionProvince},
	{Code: "3100000000", Name: "울산광역시", Type: models.RegionProvince},
	{Code: "3600000000", Name: "세종특별자치시", Type: models.RegionProvince},
	{Code: "4100000000", Name: "경기도", Type: models.RegionProvince},
	{Code: "5100000000", Name: "강원특별자치도", Type: models.RegionProvince},
	{Code: "4300000000", Name: "충청북도", Type: models.RegionProvince},
	{Code: "4400000000", Name: "충청남도", Type: models.RegionProvince},
	{Code: "5200000000", Name: "전북특별자치도", Type: models.RegionProvince},
	{Code: "4600000000", Name: "전라남도", Type: models.RegionProvince},
	{Code: "4700000000", Name: "경상북도", Type: models.RegionProvince},
	{Code: "4800000000", Name: "경상남도", Type: models.RegionProvince},
	{Code: "5000000000", Name: "제주특별자치도", Type: models.RegionProvince},
}

// districts is the static second level, keyed by province code.
var districts = map[string][]models.Region{
	"1100000000": { // 서울특별시
		{Code: "1168000000", Name: "강남구", Type: models.RegionDistrict},
		{Code: "1174000000", Name: "강동구", Type: models.RegionDistrict},
		{Code: "1130500000", Name: "강북구", Type: models.RegionDistrict},
		{Code: "1150000000", Name: "강서구", Type: models.RegionDistrict},
		{Code: "1162000000", Name: "관악구", Type: models.RegionDistrict},
		{Code: "1121500000", Name: "광진구", Type: models.RegionDistrict},
		{Code: "1153000000", Name: "구로구", Type: models.RegionDistrict},
		{Code: "1154500000", Name: "금천구", Type: models.RegionDistrict},
		{Code: "1135000000", Name: "노원구", Type: models.RegionDistrict},
		{Code: "1132000000", Name: "도봉구", Type: models.RegionDistrict},
		{Code: "1123000000", Name: "동대문구", Type: models.RegionDistrict},
		{Code: "1159000000", Name: "동작구", Type: models.RegionDistrict},
		{Code: "1144000000", Name: "마포구", Type: models.RegionDistrict},
		{Code: "1141000000", Name: "서대문구", Type: models.RegionDistrict},
		{Code: "1165000000", Name: "서초구", Type: models.RegionDistrict},
		{Code: "1120000000", Name: "성동구", Type: models.RegionDistrict},
		{Code: "1129000000", Name: "성북구", Type: models.RegionDistrict},
		{Code: "1171000000", Name: "송파구", Type: models.RegionDistrict},
		{Code: "1147000000", Name: "양천구", Type: models.RegionDistrict},
		{Code: "1156000000", Name: "영등포구", Type: models.RegionDistrict},
		{Code: "1117000000", Name: "용산구", Type: models.RegionDistrict},
		{Code: "1138000000", Name: "은평구", Type: models.RegionDistrict},
		{Code: "1111000000", Name: "종로구", Type: models.RegionDistrict},
		{Code: "1114000000", Name: "중구", Type: models.RegionDistrict},
		{Code: "1126000000", Name: "중랑구", Type: models.RegionDistrict},
	},
	"2600000000": { // 부산광역시
		{Code: "2611000000", Name: "중구", Type: models.RegionDistrict},
		{Code: "2614000000", Name: "서구", Type: models.RegionDistrict},
		{Code: "2617000000", Name: "동구", Type: models.RegionDistrict},
		{Code: "2620000000", Name: "영도구", Type: models.RegionDistrict},
		{Code: "2623000000", Name: "부산진구", Type: models.RegionDistrict},
		{Code: "2626000000", Name: "동래구", Type: models.RegionDistrict},
		{Code: "2629000000", Name: "남구", Type: models.RegionDistrict},
		{Code: "2632000000", Name: "북구", Type: models.RegionDistrict},
		{Code: "2635000000", Name: "해운대구", Type: models.RegionDistrict},
		{Code: "2638000000", Name: "사하구", Type: models.RegionDistrict},
		{Code: "2641000000", Name: "금정구", Type: models.RegionDistrict},
		{Code: "2644000000", Name: "강서구", Type: models.RegionDistrict},
		{Code: "2647000000", Name: "연제구", Type: models.RegionDistrict},
		{Code: "2650000000", Name: "수영구", Type: models.RegionDistrict},
		{Code: "2653000000", Name: "사상구", Type: models.RegionDistrict},
		{Code: "2671000000", Name: "기장군", Type: models.RegionDistrict},
	},
	"2700000000": { // 대구광역시
		{Code: "2711000000", Name: "중구", Type: models.RegionDistrict},
		{Code: "2714000000", Name: "동구", Type: models.RegionDistrict},
		{Code: "2717000000", Name: "서구", Type: models.RegionDistrict},
		{Code: "2720000000", Name: "남구", Type: models.RegionDistrict},
		{Code: "2723000000", Name: "북구", Type: models.RegionDistrict},
		{Code: "2726000000", Name: "수성구", Type: models.RegionDistrict},
		{Code: "2729000000", Name: "달서구", Type: models.RegionDistrict},
		{Code: "2771000000", Name: "달성군", Type: models.RegionDistrict},
	},
	"2800000000": { // 인천광역시
		{Code: "2811000000", Name: "중구", Type: models.RegionDistrict},
		{Code: "2814000000", Name: "동구", Type: models.RegionDistrict},
		{Code: "2817700000", Name: "미추홀구", Type: models.RegionDistrict},
		{Code: "2818500000", Name: "연수구", Type: models.RegionDistrict},
		{Code: "2820000000", Name: "남동구", Type: models.RegionDistrict},
		{Code: "2823700000", Name: "부평구", Type: models.RegionDistrict},
		{Code: "2824500000", Name: "계양구", Type: models.RegionDistrict},
		{Code: "2826000000", Name: "서구", Type: models.RegionDistrict},
		{Code: "2871000000", Name: "강화군", Type: models.RegionDistrict},
		{Code: "2872000000", Name: "옹진군", Type: models.RegionDistrict},
	},
	"2900000000": { // 광주광역시
		{Code: "2911000000", Name: "동구", Type: models.RegionDistrict},
		{Code: "2914000000", Name: "서구", Type: models.RegionDistrict},
		{Code: "2917000000", Name: "남구", Type: models.RegionDistrict},
		{Code: "2920000000", Name: "북구", Type: models.RegionDistrict},
		{Code: "2950000000", Name: "광산구", Type: models.RegionDistrict},
	},
	"3000000000": { // 대전광역시
		{Code: "3011000000", Name: "동구", Type: models.RegionDistrict},
		{Code: "3014000000", Name: "중구", Type: models.RegionDistrict},
		{Code: "3017000000", Name: "서구", Type: models.RegionDistrict},
		{Code: "3020000000", Name: "유성구", Type: models.RegionDistrict},
		{Code: "3023000000", Name: "대덕구", Type: models.RegionDistrict},
	},
	"3100000000": { // 울산광역시
		{Code: "3111000000", Name: "중구", Type: models.RegionDistrict},
		{Code: "3114000000", Name: "남구", Type: models.RegionDistrict},
		{Code: "3117000000", Name: "동구", Type: models.RegionDistrict},
		{Code: "3120000000", Name: "북구", Type: models.RegionDistrict},
		{Code: "3171000000", Name: "울주군", Type: models.RegionDistrict},
	},
	"3600000000": { // 세종특별자치시
		{Code: "3600000000", Name: "세종시", Type: models.RegionDistrict},
	},
	"4100000000": { // 경기도
		{Code: "4128200000", Name: "고양시덕양구", Type: models.RegionDistrict},
		{Code: "4128100000", Name: "고양시일산동구", Type: models.RegionDistrict},
		{Code: "4128500000", Name: "고양시일산서구", Type: models.RegionDistrict},
		{Code: "4129000000", Name: "과천시", Type: models.RegionDistrict},
		{Code: "4121000000", Name: "광명시", Type: models.RegionDistrict},
		{Code: "4161000000", Name: "광주시", Type: models.RegionDistrict},
		{Code: "4131000000", Name: "구리시", Type: models.RegionDistrict},
		{Code: "4141000000", Name: "군포시", Type: models.RegionDistrict},
		{Code: "4157000000", Name: "김포시", Type: models.RegionDistrict},
		{Code: "4136000000", Name: "남양주시", Type: models.RegionDistrict},
		{Code: "4125000000", Name: "동두천시", Type: models.RegionDistrict},
		{Code: "4119000000", Name: "부천시", Type: models.RegionDistrict},
		{Code: "4113500000", Name: "성남시분당구", Type: models.RegionDistrict},
		{Code: "4113100000", Name: "성남시수정구", Type: models.RegionDistrict},
		{Code: "4113300000", Name: "성남시중원구", Type: models.RegionDistrict},
		{Code: "4111900000", Name: "수원시권선구", Type: models.RegionDistrict},
		{Code: "4111700000", Name: "수원시장안구", Type: models.RegionDistrict},
		{Code: "4111100000", Name: "수원시팔달구", Type: models.RegionDistrict},
		{Code: "4111300000", Name: "수원시영통구", Type: models.RegionDistrict},
		{Code: "4139000000", Name: "시흥시", Type: models.RegionDistrict},
		{Code: "4127300000", Name: "안산시단원구", Type: models.RegionDistrict},
		{Code: "4127100000", Name: "안산시상록구", Type: models.RegionDistrict},
		{Code: "4155000000", Name: "안성시", Type: models.RegionDistrict},
		{Code: "4117300000", Name: "안양시동안구", Type: models.RegionDistrict},
		{Code: "4117100000", Name: "안양시만안구", Type: models.RegionDistrict},
		{Code: "4163000000", Name: "양주시", Type: models.RegionDistrict},
		{Code: "4183000000", Name: "양평군", Type: models.RegionDistrict},
		{Code: "4167000000", Name: "여주시", Type: models.RegionDistrict},
		{Code: "4180000000", Name: "연천군", Type: models.RegionDistrict},
		{Code: "4137000000", Name: "오산시", Type: models.RegionDistrict},
		{Code: "4146300000", Name: "용인시기흥구", Type: models.RegionDistrict},
		{Code: "4146100000", Name: "용인시처인구", Type: models.RegionDistrict},
		{Code: "4146500000", Name: "용인시수지구", Type: models.RegionDistrict},
		{Code: "4143000000", Name: "의왕시", Type: models.RegionDistrict},
		{Code: "4115000000", Name: "의정부시", Type: models.RegionDistrict},
		{Code: "4150000000", Name: "이천시", Type: models.RegionDistrict},
		{Code: "4148000000", Name: "파주시", Type: models.RegionDistrict},
		{Code: "4122000000", Name: "평택시", Type: models.RegionDistrict},
		{Code: "4165000000", Name: "포천시", Type: models.RegionDistrict},
		{Code: "4145000000", Name: "하남시", Type: models.RegionDistrict},
		{Code: "4159000000", Name: "화성시", Type: models.RegionDistrict},
	},
	"5100000000": { // 강원특별자치도
		{Code: "5111000000", Name: "춘천시", Type: models.RegionDistrict},
		{Code: "5113000000", Name: "원주시", Type: models.RegionDistrict},
		{Code: "5115000000", Name: "강릉시", Type: models.RegionDistrict},
		{Code: "5117000000", Name: "동해시", Type: models.RegionDistrict},
		{Code: "5119000000", Name: "태백시", Type: models.RegionDistrict},
		{Code: "5121000000", Name: "속초시", Type: models.RegionDistrict},
		{Code: "5123000000", Name: "삼척시", Type: models.RegionDistrict},
		{Code: "5172000000", Name: "홍천군", Type: models.RegionDistrict},
		{Code: "5173000000", Name: "횡성군", Type: models.RegionDistrict},
		{Code: "5175000000", Name: "영월군", Type: models.RegionDistrict},
		{Code: "5176000000", Name: "평창군", Type: models.RegionDistrict},
		{Code: "5177000000", Name: "정선군", Type: models.RegionDistrict},
		{Code: "5178000000", Name: "철원군", Type: models.RegionDistrict},
		{Code: "5179000000", Name: "화천군", Type: models.RegionDistrict},
		{Code: "5180000000", Name: "양구군", Type: models.RegionDistrict},
		{Code: "5181000000", Name: "인제군", Type: models.RegionDistrict},
		{Code: "5182000000", Name: "고성군", Type: models.RegionDistrict},
		{Code: "5183000000", Name: "양양군", Type: models.RegionDistrict},
	},
	"4300000000": { // 충청북도
		{Code: "4311000000", Name: "청주시상당구", Type: models.RegionDistrict},
		{Code: "4311200000", Name: "청주시서원구", Type: models.RegionDistrict},
		{Code: "4311400000", Name: "청주시흥덕구", Type: models.RegionDistrict},
		{Code: "4311500000", Name: "청주시청원구", Type: models.RegionDistrict},
		{Code: "4313000000", Name: "충주시", Type: models.RegionDistrict},
		{Code: "4315000000", Name: "제천시", Type: models.RegionDistrict},
		{Code: "4372000000", Name: "보은군", Type: models.RegionDistrict},
		{Code: "4373000000", Name: "옥천군", Type: models.RegionDistrict},
		{Code: "4374000000", Name: "영동군", Type: models.RegionDistrict},
		{Code: "4374500000", Name: "증평군", Type: models.RegionDistrict},
		{Code: "4375000000", Name: "진천군", Type: models.RegionDistrict},
		{Code: "4376000000", Name: "괴산군", Type: models.RegionDistrict},
		{Code: "4377000000", Name: "음성군", Type: models.RegionDistrict},
		{Code: "4380000000", Name: "단양군", Type: models.RegionDistrict},
	},
	"4400000000": { // 충청남도
		{Code: "4413000000", Name: "천안시동남구", Type: models.RegionDistrict},
		{Code: "4413300000", Name: "천안시서북구", Type: models.RegionDistrict},
		{Code: "4415000000", Name: "공주시", Type: models.RegionDistrict},
		{Code: "4418000000", Name: "보령시", Type: models.RegionDistrict},
		{Code: "4420000000", Name: "아산시", Type: models.RegionDistrict},
		{Code: "4421000000", Name: "서산시", Type: models.RegionDistrict},
		{Code: "4423000000", Name: "논산시", Type: models.RegionDistrict},
		{Code: "4425000000", Name: "계룡시", Type: models.RegionDistrict},
		{Code: "4427000000", Name: "당진시", Type: models.RegionDistrict},
		{Code: "4471000000", Name: "금산군", Type: models.RegionDistrict},
		{Code: "4476000000", Name: "부여군", Type: models.RegionDistrict},
		{Code: "4477000000", Name: "서천군", Type: models.RegionDistrict},
		{Code: "4479000000", Name: "청양군", Type: models.RegionDistrict},
		{Code: "4480000000", Name: "홍성군", Type: models.RegionDistrict},
		{Code: "4481000000", Name: "예산군", Type: models.RegionDistrict},
		{Code: "4482500000", Name: "태안군", Type: models.RegionDistrict},
	},
	"5200000000": { // 전북특별자치도
		{Code: "5211000000", Name: "전주시완산구", Type: models.RegionDistrict},
		{Code: "5211400000", Name: "전주시덕진구", Type: models.RegionDistrict},
		{Code: "5213000000", Name: "군산시", Type: models.RegionDistrict},
		{Code: "5214000000", Name: "익산시", Type: models.RegionDistrict},
		{Code: "5218000000", Name: "정읍시", Type: models.RegionDistrict},
		{Code: "5219000000", Name: "남원시", Type: models.RegionDistrict},
		{Code: "5221000000", Name: "김제시", Type: models.RegionDistrict},
		{Code: "5271000000", Name: "완주군", Type: models.RegionDistrict},
		{Code: "5272000000", Name: "진안군", Type: models.RegionDistrict},
		{Code: "5273000000", Name: "무주군", Type: models.RegionDistrict},
		{Code: "5274000000", Name: "장수군", Type: models.RegionDistrict},
		{Code: "5275000000", Name: "임실군", Type: models.RegionDistrict},
		{Code: "5277000000", Name: "순창군", Type: models.RegionDistrict},
		{Code: "5279000000", Name: "고창군", Type: models.RegionDistrict},
		{Code: "5280000000", Name: "부안군", Type: models.RegionDistrict},
	},
	"4600000000": { // 전라남도
		{Code: "4611000000", Name: "목포시", Type: models.RegionDistrict},
		{Code: "4613000000", Name: "여수시", Type: models.RegionDistrict},
		{Code: "4615000000", Name: "순천시", Type: models.RegionDistrict},
		{Code: "4617000000", Name: "나주시", Type: models.RegionDistrict},
		{Code: "4619000000", Name: "광양시", Type: models.RegionDistrict},
		{Code: "4671000000", Name: "담양군", Type: models.RegionDistrict},
		{Code: "4672000000", Name: "곡성군", Type: models.RegionDistrict},
		{Code: "4673000000", Name: "구례군", Type: models.RegionDistrict},
		{Code: "4677000000", Name: "고흥군", Type: models.RegionDistrict},
		{Code: "4678000000", Name: "보성군", Type: models.RegionDistrict},
		{Code: "4679000000", Name: "화순군", Type: models.RegionDistrict},
		{Code: "4680000000", Name: "장흥군", Type: models.RegionDistrict},
		{Code: "4681000000", Name: "강진군", Type: models.RegionDistrict},
		{Code: "4682000000", Name: "해남군", Type: models.RegionDistrict},
		{Code: "4683000000", Name: "영암군", Type: models.RegionDistrict},
		{Code: "4684000000", Name: "무안군", Type: models.RegionDistrict},
		{Code: "4686000000", Name: "함평군", Type: models.RegionDistrict},
		{Code: "4687000000", Name: "영광군", Type: models.RegionDistrict},
		{Code: "4688000000", Name: "장성군", Type: models.RegionDistrict},
		{Code: "4689000000", Name: "완도군", Type: models.RegionDistrict},
		{Code: "4690000000", Name: "진도군", Type: models.RegionDistrict},
		{Code: "4691000000", Name: "신안군", Type: models.RegionDistrict},
	},
	"4700000000": { // 경상북도
		{Code: "4711000000", Name: "포항시남구", Type: models.RegionDistrict},
		{Code: "4711100000", Name: "포항시북구", Type: models.RegionDistrict},
		{Code: "4713000000", Name: "경주시", Type: models.RegionDistrict},
		{Code: "4715000000", Name: "김천시", Type: models.RegionDistrict},
		{Code: "4717000000", Name: "안동시", Type: models.RegionDistrict},
		{Code: "4719000000", Name: "구미시", Type: models.RegionDistrict},
		{Code: "4721000000", Name: "영주시", Type: models.RegionDistrict},
		{Code: "4723000000", Name: "영천시", Type: models.RegionDistrict},
		{Code: "4725000000", Name: "상주시", Type: models.RegionDistrict},
		{Code: "4727000000", Name: "문경시", Type: models.RegionDistrict},
		{Code: "4729000000", Name: "경산시", Type: models.RegionDistrict},
		{Code: "4772000000", Name: "군위군", Type: models.RegionDistrict},
		{Code: "4773000000", Name: "의성군", Type: models.RegionDistrict},
		{Code: "4775000000", Name: "청송군", Type: models.RegionDistrict},
		{Code: "4776000000", Name: "영양군", Type: models.RegionDistrict},
		{Code: "4777000000", Name: "영덕군", Type: models.RegionDistrict},
		{Code: "4782000000", Name: "청도군", Type: models.RegionDistrict},
		{Code: "4783000000", Name: "고령군", Type: models.RegionDistrict},
		{Code: "4784000000", Name: "성주군", Type: models.RegionDistrict},
		{Code: "4785000000", Name: "칠곡군", Type: models.RegionDistrict},
		{Code: "4790000000", Name: "예천군", Type: models.RegionDistrict},
		{Code: "4792000000", Name: "봉화군", Type: models.RegionDistrict},
		{Code: "4793000000", Name: "울진군", Type: models.RegionDistrict},
		{Code: "4794000000", Name: "울릉군", Type: models.RegionDistrict},
	},
	"4800000000": { // 경상남도
		{Code: "4812100000", Name: "창원시의창구", Type: models.RegionDistrict},
		{Code: "4812300000", Name: "창원시성산구", Type: models.RegionDistrict},
		{Code: "4812500000", Name: "창원시마산합포구", Type: models.RegionDistrict},
		{Code: "4812700000", Name: "창원시마산회원구", Type: models.RegionDistrict},
		{Code: "4812900000", Name: "창원시진해구", Type: models.RegionDistrict},
		{Code: "4817000000", Name: "진주시", Type: models.RegionDistrict},
		{Code: "4822000000", Name: "통영시", Type: models.RegionDistrict},
		{Code: "4824000000", Name: "사천시", Type: models.RegionDistrict},
		{Code: "4825000000", Name: "김해시", Type: models.RegionDistrict},
		{Code: "4827000000", Name: "밀양시", Type: models.RegionDistrict},
		{Code: "4831000000", Name: "거제시", Type: models.RegionDistrict},
		{Code: "4833000000", Name: "양산시", Type: models.RegionDistrict},
		{Code: "4872000000", Name: "의령군", Type: models.RegionDistrict},
		{Code: "4873000000", Name: "함안군", Type: models.RegionDistrict},
		{Code: "4874000000", Name: "창녕군", Type: models.RegionDistrict},
		{Code: "4882000000", Name: "고성군", Type: models.RegionDistrict},
		{Code: "4884000000", Name: "남해군", Type: models.RegionDistrict},
		{Code: "4885000000", Name: "하동군", Type: models.RegionDistrict},
		{Code: "4886000000", Name: "산청군", Type: models.RegionDistrict},
		{Code: "4887000000", Name: "함양군", Type: models.RegionDistrict},
		{Code: "4888000000", Name: "거창군", Type: models.RegionDistrict},
		{Code: "4889000000", Name: "합천군", Type: models.RegionDistrict},
	},
	"5000000000": { // 제주특별자치도
		{Code: "5011000000", Name: "제주시", Type: models.RegionDistrict},
		{Code: "5013000000", Name: "서귀포시", Type: models.RegionDistrict},
	},
}
