package metro

import "fmt"

// lineRoute is a line with its stations in running order.
type lineRoute struct {
	info     LineInfo
	stations []string
}

// delhiMetro is the static network. Station names must be spelled identically
// on every line they serve so interchanges resolve to one name.
var delhiMetro = []lineRoute{
	{
		info: LineInfo{Line: LineRed, DisplayName: "Red Line", Color: "#E21F26"},
		stations: []string{
			"Rithala", "Rohini West", "Rohini East", "Pitampura", "Kohat Enclave",
			"Netaji Subhash Place", "Keshav Puram", "Kanhaiya Nagar", "Inderlok",
			"Shastri Nagar", "Pratap Nagar", "Pulbangash", "Tis Hazari", "Kashmere Gate",
			"Shastri Park", "Seelampur", "Welcome", "Shahdara", "Mansarovar Park",
			"Jhilmil", "Dilshad Garden", "Shaheed Nagar", "Raj Bagh",
			"Major Mohit Sharma Rajendra Nagar", "Shyam Park", "Mohan Nagar", "Arthala",
			"Hindon River", "Shaheed Sthal",
		},
	},
	{
		info: LineInfo{Line: LineYellow, DisplayName: "Yellow Line", Color: "#FFCB05"},
		stations: []string{
			"Samaypur Badli", "Rohini Sector 18-19", "Haiderpur Badli Mor", "Jahangirpuri",
			"Adarsh Nagar", "Azadpur", "Model Town", "GTB Nagar", "Vishwavidyalaya",
			"Vidhan Sabha", "Civil Lines", "Kashmere Gate", "Chandni Chowk", "Chawri Bazar",
			"New Delhi", "Rajiv Chowk", "Patel Chowk", "Central Secretariat", "Udyog Bhawan",
			"Lok Kalyan Marg", "Jor Bagh", "Dilli Haat INA", "AIIMS", "Green Park",
			"Hauz Khas", "Malviya Nagar", "Saket", "Qutab Minar", "Chhattarpur",
			"Sultanpur", "Ghitorni", "Arjan Garh", "Guru Dronacharya", "Sikanderpur",
			"MG Road", "IFFCO Chowk", "Millennium City Centre Gurugram",
		},
	},
	{
		info: LineInfo{Line: LineBlue, DisplayName: "Blue Line", Color: "#0070C0"},
		stations: []string{
			"Dwarka Sector 21", "Dwarka Sector 8", "Dwarka Sector 9", "Dwarka Sector 10",
			"Dwarka Sector 11", "Dwarka Sector 12", "Dwarka Sector 13", "Dwarka Sector 14",
			"Dwarka", "Dwarka Mor", "Nawada", "Uttam Nagar West", "Uttam Nagar East",
			"Janakpuri West", "Janakpuri East", "Tilak Nagar", "Subhash Nagar",
			"Tagore Garden", "Rajouri Garden", "Ramesh Nagar", "Moti Nagar", "Kirti Nagar",
			"Shadipur", "Patel Nagar", "Rajendra Place", "Karol Bagh", "Jhandewalan",
			"Ramakrishna Ashram Marg", "Rajiv Chowk", "Barakhamba Road", "Mandi House",
			"Supreme Court", "Indraprastha", "Yamuna Bank", "Akshardham",
			"Mayur Vihar Phase-1", "Mayur Vihar Extension", "New Ashok Nagar",
			"Noida Sector 15", "Noida Sector 16", "Noida Sector 18", "Botanical Garden",
			"Golf Course", "Noida City Centre", "Noida Sector 34", "Noida Sector 52",
			"Noida Sector 61", "Noida Sector 59", "Noida Sector 62", "Noida Electronic City",
		},
	},
	{
		info: LineInfo{Line: LineBlueBranch, DisplayName: "Blue Line Branch", Color: "#4F9FD9"},
		stations: []string{
			"Yamuna Bank", "Laxmi Nagar", "Nirman Vihar", "Preet Vihar", "Karkarduma",
			"Anand Vihar ISBT", "Kaushambi", "Vaishali",
		},
	},
	{
		info: LineInfo{Line: LineGreen, DisplayName: "Green Line", Color: "#00A651"},
		stations: []string{
			"Inderlok", "Ashok Park Main", "Punjabi Bagh", "Shivaji Park", "Madipur",
			"Paschim Vihar East", "Paschim Vihar West", "Peeragarhi", "Udyog Nagar",
			"Maharaja Surajmal Stadium", "Nangloi", "Nangloi Railway Station",
			"Rajdhani Park", "Mundka", "Mundka Industrial Area", "Ghevra", "Tikri Kalan",
			"Tikri Border", "Pandit Shree Ram Sharma", "Bahadurgarh City",
			"Brigadier Hoshiyar Singh",
		},
	},
	{
		info: LineInfo{Line: LineGreenBranch, DisplayName: "Green Line Branch", Color: "#5CC56F"},
		stations: []string{
			"Kirti Nagar", "Satguru Ram Singh Marg", "Ashok Park Main",
		},
	},
	{
		info: LineInfo{Line: LineViolet, DisplayName: "Violet Line", Color: "#8E3E97"},
		stations: []string{
			"Kashmere Gate", "Lal Qila", "Jama Masjid", "Delhi Gate", "ITO", "Mandi House",
			"Janpath", "Central Secretariat", "Khan Market", "Jawaharlal Nehru Stadium",
			"Jangpura", "Lajpat Nagar", "Moolchand", "Kailash Colony", "Nehru Place",
			"Kalkaji Mandir", "Govind Puri", "Harkesh Nagar Okhla", "Jasola Apollo",
			"Sarita Vihar", "Mohan Estate", "Tughlakabad Station", "Badarpur Border",
			"Sarai", "NHPC Chowk", "Mewala Maharajpur", "Sector 28", "Badkal Mor",
			"Old Faridabad", "Neelam Chowk Ajronda", "Bata Chowk", "Escorts Mujesar",
			"Sant Surdas Sihi", "Raja Nahar Singh",
		},
	},
	{
		info: LineInfo{Line: LinePink, DisplayName: "Pink Line", Color: "#F384B6"},
		stations: []string{
			"Majlis Park", "Azadpur", "Shalimar Bagh", "Netaji Subhash Place", "Shakurpur",
			"Punjabi Bagh West", "ESI Hospital", "Rajouri Garden", "Mayapuri",
			"Naraina Vihar", "Delhi Cantt", "Durgabai Deshmukh South Campus",
			"Sir Vishweshwaraiah Moti Bagh", "Bhikaji Cama Place", "Sarojini Nagar",
			"Dilli Haat INA", "South Extension", "Lajpat Nagar", "Vinobapuri", "Ashram",
			"Sarai Kale Khan Hazrat Nizamuddin", "Mayur Vihar Phase-1", "Mayur Vihar Pocket 1",
			"Trilokpuri Sanjay Lake", "East Vinod Nagar Mayur Vihar-II",
			"Mandawali West Vinod Nagar", "IP Extension", "Anand Vihar ISBT", "Karkarduma",
			"Karkarduma Court", "Krishna Nagar", "East Azad Nagar", "Welcome", "Jaffrabad",
			"Maujpur Babarpur", "Gokulpuri", "Johri Enclave", "Shiv Vihar",
		},
	},
	{
		info: LineInfo{Line: LineMagenta, DisplayName: "Magenta Line", Color: "#CC338B"},
		stations: []string{
			"Janakpuri West", "Dabri Mor Janakpuri South", "Dashrath Puri", "Palam",
			"Sadar Bazaar Cantonment", "Terminal 1 IGI Airport", "Shankar Vihar",
			"Vasant Vihar", "Munirka", "RK Puram", "IIT Delhi", "Hauz Khas",
			"Panchsheel Park", "Chirag Delhi", "Greater Kailash", "Nehru Enclave",
			"Kalkaji Mandir", "Okhla NSIC", "Sukhdev Vihar", "Jamia Millia Islamia",
			"Okhla Vihar", "Jasola Vihar Shaheen Bagh", "Kalindi Kunj",
			"Okhla Bird Sanctuary", "Botanical Garden",
		},
	},
	{
		info: LineInfo{Line: LineGrey, DisplayName: "Grey Line", Color: "#9A9A9A"},
		stations: []string{
			"Dwarka", "Nangli", "Najafgarh", "Dhansa Bus Stand",
		},
	},
	{
		info: LineInfo{Line: LineOrange, DisplayName: "Airport Express", Color: "#F58220"},
		stations: []string{
			"New Delhi", "Shivaji Stadium", "Dhaula Kuan", "Delhi Aerocity", "IGI Airport",
			"Dwarka Sector 21", "Yashobhoomi Dwarka Sector 25",
		},
	},
	{
		info: LineInfo{Line: LineRapidMetro, DisplayName: "Rapid Metro Gurugram", Color: "#1B75BC"},
		stations: []string{
			"Sector 55-56", "Sector 54 Chowk", "Sector 53-54", "Sector 42-43", "Phase 1",
			"Sikanderpur", "Phase 2", "Belvedere Towers", "Cyber City", "Moulsari Avenue",
			"Phase 3",
		},
	},
}

// Lines returns the known lines in display order.
func Lines() []LineInfo {
	lines := make([]LineInfo, 0, len(delhiMetro))
	for _, lr := range delhiMetro {
		lines = append(lines, lr.info)
	}
	return lines
}

// DefaultStations returns the static network as a flat station list.
func DefaultStations() []Station {
	var n int
	for _, lr := range delhiMetro {
		n += len(lr.stations)
	}

	stations := make([]Station, 0, n)
	for _, lr := range delhiMetro {
		for i, name := range lr.stations {
			stations = append(stations, Station{
				ID:            fmt.Sprintf("%s-%02d", lr.info.Line, i),
				Name:          name,
				Line:          lr.info.Line,
				SequenceIndex: i,
			})
		}
	}

	return markInterchanges(stations)
}

// markInterchanges sets IsInterchange on every station whose name is served by
// more than one line.
func markInterchanges(stations []Station) []Station {
	lines := make(map[string]map[Line]struct{})
	for _, s := range stations {
		if lines[s.Name] == nil {
			lines[s.Name] = make(map[Line]struct{})
		}
		lines[s.Name][s.Line] = struct{}{}
	}

	for i := range stations {
		stations[i].IsInterchange = len(lines[stations[i].Name]) > 1
	}
	return stations
}
